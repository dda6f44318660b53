package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	cacheport "github.com/skyloyalty/miles-ledger/internal/domain/port/cache"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/domain/usecase/access"
	ledgerUseCase "github.com/skyloyalty/miles-ledger/internal/domain/usecase/ledger"
	rosterUseCase "github.com/skyloyalty/miles-ledger/internal/domain/usecase/roster"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/routes"
	rediscache "github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/cache"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/database"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/logger"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/time"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Setup database configuration
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
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = dbManager.Close()
	}()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(dbManager.DB(), tp, appLogger)
	staffRepo := repository.NewStaffRepository(dbManager.DB(), tp, appLogger)

	// Optional Redis-backed leaderboard cache
	leaderboardCache, redisClient := setupLeaderboardCache(cfg, appLogger)
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	// Initialize use cases
	ledgerService := ledgerUseCase.NewService(ledgerRepo, leaderboardCache, appLogger)
	rosterService := rosterUseCase.NewService(staffRepo, appLogger)
	policy := access.NewPolicy(rosterService)

	// Initialize API handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService, policy, appLogger)
	queryHandler := handler.NewQueryHandler(ledgerService, policy, appLogger)
	staffHandler := handler.NewStaffHandler(rosterService, policy, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, ledgerHandler, queryHandler, staffHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// setupLeaderboardCache builds the Redis leaderboard cache when enabled.
// The service runs fine without it; every leaderboard read then hits the
// database directly.
func setupLeaderboardCache(cfg *config.Config, appLogger coreport.Logger) (cacheport.LeaderboardCache, *redis.Client) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		appLogger.Warn("Redis unreachable, running without leaderboard cache", map[string]any{
			"addr":  cfg.Redis.Addr(),
			"error": err.Error(),
		})
		_ = client.Close()
		return nil, nil
	}

	appLogger.Info("Leaderboard cache enabled", map[string]any{
		"addr": cfg.Redis.Addr(),
		"ttl":  cfg.Ledger.LeaderboardCacheTTL.String(),
	})
	ttl := coreport.Duration(cfg.Ledger.LeaderboardCacheTTL)
	return rediscache.NewRedisLeaderboardCache(client, ttl, appLogger), client
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or ML_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or ML_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or ML_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
