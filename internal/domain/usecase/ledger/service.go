package ledger

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/port/cache"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/domain/port/persistence"
)

// Leaderboard query limits accepted from callers.
const (
	MinLeaderboardLimit     = 1
	MaxLeaderboardLimit     = 25
	DefaultLeaderboardLimit = 10

	DefaultHistoryLimit = 10
	DefaultFeedLimit    = 50
)

// Service implements the ledger business logic on top of the repository.
// Timestamps are owned by the repository, which stamps rows at commit
// time; the service itself has no clock.
type Service struct {
	ledgerRepo       persistence.LedgerRepository
	leaderboardCache cache.LeaderboardCache
	logger           coreport.Logger
}

// NewService creates a new ledger service. The leaderboard cache is
// optional; pass nil to always read from the store.
func NewService(
	ledgerRepo persistence.LedgerRepository,
	leaderboardCache cache.LeaderboardCache,
	logger coreport.Logger,
) *Service {
	return &Service{
		ledgerRepo:       ledgerRepo,
		leaderboardCache: leaderboardCache,
		logger:           logger,
	}
}

// invalidateLeaderboard drops cached leaderboards after a mutation.
func (s *Service) invalidateLeaderboard(ctx context.Context) {
	if s.leaderboardCache != nil {
		s.leaderboardCache.Invalidate(ctx)
	}
}
