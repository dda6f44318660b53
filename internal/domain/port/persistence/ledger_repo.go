package persistence

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

// LedgerRepository owns user records and the append-only transaction log.
//
// Every mutating method commits the balance update and the audit row as a
// single atomic unit, or fails with no partial effect. Concurrent
// mutations against the same user serialize on a row lock; mutations
// against different users proceed in parallel.
type LedgerRepository interface {
	// GetOrCreateUser returns the existing user, refreshing the cached
	// username if it changed, or creates a new zero-balance user.
	//
	// Possible errors:
	// - ErrStorageUnavailable: if the underlying persistence failed
	GetOrCreateUser(ctx context.Context, userID, username string) (*entity.User, error)

	// GetUser retrieves a user by ID without side effects.
	//
	// Possible errors:
	// - ErrUserNotFound: if no user with the given ID exists
	// - ErrStorageUnavailable: if the underlying persistence failed
	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// Credit atomically ensures the user exists, increases the balance by
	// amount and appends a credit transaction. Amount must already be
	// validated as positive by the caller.
	//
	// Possible errors:
	// - ErrStorageUnavailable: if the underlying persistence failed
	Credit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error)

	// Debit atomically ensures the user exists, checks the balance against
	// the amount as of the same atomic unit, decreases it and appends a
	// debit transaction. No audit row is written on the failure path.
	//
	// Possible errors:
	// - ErrInsufficientBalance: if the balance does not cover the amount
	//   (as *InsufficientBalanceError carrying balance and amount)
	// - ErrStorageUnavailable: if the underlying persistence failed
	Debit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error)

	// SetAbsolute atomically overwrites the balance to exactly amount and
	// appends a set transaction whose stored amount is the signed
	// difference from the prior balance. It deliberately bypasses the
	// insufficiency check: it is an authoritative override.
	//
	// Possible errors:
	// - ErrStorageUnavailable: if the underlying persistence failed
	SetAbsolute(ctx context.Context, userID, username string, amount int64, actorID, actorUsername string) (*entity.User, error)

	// Leaderboard returns users with a positive balance, descending by
	// miles, ties broken by insertion order, truncated to limit.
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)

	// UserTransactions returns a user's audit records, most recent first,
	// truncated to limit.
	UserTransactions(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)

	// AllTransactions returns the global audit feed joined with each
	// user's current username, most recent first, truncated to limit.
	AllTransactions(ctx context.Context, limit int) ([]entity.TransactionWithUser, error)

	// Stats returns an aggregate snapshot over all users.
	Stats(ctx context.Context) (*entity.Stats, error)
}
