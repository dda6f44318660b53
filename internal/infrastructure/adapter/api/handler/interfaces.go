package handler

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

// LedgerService is the slice of the ledger usecase the handlers need.
type LedgerService interface {
	Credit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error)
	Debit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error)
	SetAbsolute(ctx context.Context, userID, username string, amount int64, actorID, actorUsername string) (*entity.User, error)
	GetBalance(ctx context.Context, userID string) (*entity.User, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
	UserHistory(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)
	GlobalHistory(ctx context.Context, limit int) ([]entity.TransactionWithUser, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

// RosterService is the slice of the roster usecase the handlers need.
type RosterService interface {
	AddStaff(ctx context.Context, userID, username string) error
	RemoveStaff(ctx context.Context, userID string) error
	ListStaff(ctx context.Context) ([]entity.StaffMember, error)
}

// AccessPolicy answers the authorization questions the dispatcher asks
// before touching the ledger.
type AccessPolicy interface {
	CanViewOtherHistory(ctx context.Context, actorID string) (bool, error)
	CanMutateBalances(ctx context.Context, actorID string) (bool, error)
	CanManageStaff(actorID string, isAdministrator bool) bool
}
