package cache

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

// LeaderboardCache is a read-side cache for leaderboard queries. Cache
// failures are never fatal: a miss or an unreachable cache only means the
// query falls through to the store.
type LeaderboardCache interface {
	// Get returns the cached entries for the given limit, if present.
	Get(ctx context.Context, limit int) ([]entity.LeaderboardEntry, bool)

	// Set stores the entries for the given limit.
	Set(ctx context.Context, limit int, entries []entity.LeaderboardEntry)

	// Invalidate drops all cached leaderboards. Called after every
	// mutating ledger operation.
	Invalidate(ctx context.Context)
}
