package ledger

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
)

// GetOrCreateUser returns the user's record, creating a zero-balance user
// on first contact.
func (s *Service) GetOrCreateUser(ctx context.Context, userID, username string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return s.ledgerRepo.GetOrCreateUser(ctx, userID, username)
}

// GetBalance is a point read of a user's record, no side effects.
func (s *Service) GetBalance(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return s.ledgerRepo.GetUser(ctx, userID)
}

// Leaderboard returns the top balances, positive only, descending by
// miles with insertion-order tie-break. The limit is clamped to the
// accepted range.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit < MinLeaderboardLimit || limit > MaxLeaderboardLimit {
		limit = DefaultLeaderboardLimit
	}

	if s.leaderboardCache != nil {
		if entries, ok := s.leaderboardCache.Get(ctx, limit); ok {
			return entries, nil
		}
	}

	entries, err := s.ledgerRepo.Leaderboard(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load leaderboard", map[string]any{
			"limit": limit,
			"error": err.Error(),
		})
		return nil, err
	}

	if s.leaderboardCache != nil {
		s.leaderboardCache.Set(ctx, limit, entries)
	}

	return entries, nil
}

// UserHistory returns a user's audit records, most recent first.
func (s *Service) UserHistory(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.ledgerRepo.UserTransactions(ctx, userID, limit)
}

// GlobalHistory returns the cross-user audit feed, most recent first,
// joined with each user's current username.
func (s *Service) GlobalHistory(ctx context.Context, limit int) ([]entity.TransactionWithUser, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.ledgerRepo.AllTransactions(ctx, limit)
}

// Stats returns an aggregate snapshot over all users.
func (s *Service) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := s.ledgerRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Failed to load stats", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}
	return stats, nil
}
