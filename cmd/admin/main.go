package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/skyloyalty/miles-ledger/internal/domain/port/persistence"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/database"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/logger"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/time"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/config"
)

const defaultFeedLimit = 20

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The operator tool stays quiet unless something goes wrong.
	appLogger := logger.NewNoopLogger()
	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        "silent",
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		_ = dbManager.Close()
	}()

	adminRepo := repository.NewAdminRepository(dbManager.DB(), tp, appLogger)
	ledgerRepo := repository.NewLedgerRepository(dbManager.DB(), tp, appLogger)
	staffRepo := repository.NewStaffRepository(dbManager.DB(), tp, appLogger)

	ctx := context.Background()

	switch os.Args[1] {
	case "users":
		err = printUsers(ctx, adminRepo)
	case "staff":
		err = printStaff(ctx, staffRepo)
	case "transactions":
		limit := defaultFeedLimit
		if len(os.Args) > 2 {
			if parsed, parseErr := strconv.Atoi(os.Args[2]); parseErr == nil && parsed > 0 {
				limit = parsed
			}
		}
		err = printTransactions(ctx, ledgerRepo, limit)
	case "stats":
		err = printStats(ctx, adminRepo, ledgerRepo)
	case "search":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin search <username-prefix>")
			os.Exit(1)
		}
		err = searchUsers(ctx, adminRepo, os.Args[2])
	case "backup":
		err = runBackup(ctx, adminRepo)
	case "clear":
		err = clearAllData(ctx, adminRepo)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

func printUsage() {
	fmt.Println(`Miles ledger operator tool

Usage: admin <command> [args]

Commands:
  users               List all users with their balances
  staff               List all staff members
  transactions [n]    Show the n most recent transactions (default 20)
  stats               Show ledger statistics
  search <prefix>     Find users whose name starts with prefix
  backup              Snapshot all tables into timestamped copies
  clear               Delete ALL data (asks for confirmation)
  help                Show this help`)
}

func printUsers(ctx context.Context, adminRepo persistence.AdminRepository) error {
	users, err := adminRepo.AllUsers(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("%-24s %-24s %12s\n", "USER ID", "USERNAME", "MILES")
	for _, user := range users {
		fmt.Printf("%-24s %-24s %12d\n", user.ID, user.Username, user.Miles)
	}
	fmt.Printf("\n%d users total\n", len(users))
	return nil
}

func printStaff(ctx context.Context, staffRepo persistence.StaffRepository) error {
	members, err := staffRepo.List(ctx)
	if err != nil {
		return err
	}

	if len(members) == 0 {
		fmt.Println("No staff members found.")
		return nil
	}

	fmt.Printf("%-24s %-24s %s\n", "USER ID", "USERNAME", "ADDED")
	for _, member := range members {
		fmt.Printf("%-24s %-24s %s\n", member.UserID, member.Username, member.AddedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d staff members total\n", len(members))
	return nil
}

func printTransactions(ctx context.Context, ledgerRepo persistence.LedgerRepository, limit int) error {
	transactions, err := ledgerRepo.AllTransactions(ctx, limit)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	for _, tx := range transactions {
		fmt.Printf("[%s] %+d %s (%s) by %s: %s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.SignedAmount(), tx.Username, tx.Kind, tx.ActorUsername, tx.Reason)
	}
	return nil
}

func printStats(ctx context.Context, adminRepo persistence.AdminRepository, ledgerRepo persistence.LedgerRepository) error {
	counts, err := adminRepo.Counts(ctx)
	if err != nil {
		return err
	}
	stats, err := ledgerRepo.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Ledger statistics")
	fmt.Printf("  Users:         %d\n", counts.Users)
	fmt.Printf("  Staff:         %d\n", counts.Staff)
	fmt.Printf("  Transactions:  %d\n", counts.Transactions)
	fmt.Printf("  Total miles:   %d\n", stats.TotalMiles)
	fmt.Printf("  Average miles: %.2f\n", stats.AvgMiles)
	fmt.Printf("  Max miles:     %d\n", stats.MaxMiles)
	return nil
}

func searchUsers(ctx context.Context, adminRepo persistence.AdminRepository, query string) error {
	users, err := adminRepo.SearchUsersByNamePrefix(ctx, query)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Printf("No users matching %q.\n", query)
		return nil
	}

	for _, user := range users {
		fmt.Printf("%-24s %-24s %12d\n", user.ID, user.Username, user.Miles)
	}
	return nil
}

func runBackup(ctx context.Context, adminRepo persistence.AdminRepository) error {
	label, err := adminRepo.Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Backup complete: %s\n", label)
	return nil
}

// clearAllData wipes everything after the operator types the literal
// word CONFIRM. Anything else aborts.
func clearAllData(ctx context.Context, adminRepo persistence.AdminRepository) error {
	fmt.Println("WARNING: this permanently deletes ALL users, transactions and staff.")
	fmt.Print("Type CONFIRM to proceed: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	if strings.TrimSpace(line) != "CONFIRM" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := adminRepo.WipeAll(ctx); err != nil {
		return err
	}
	fmt.Println("All data cleared.")
	return nil
}
