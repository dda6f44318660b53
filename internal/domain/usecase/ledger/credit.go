package ledger

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
)

// Credit increases a user's balance by amount and appends a credit
// transaction, creating the user first if needed. Amount must be positive.
func (s *Service) Credit(
	ctx context.Context,
	userID, username string,
	amount int64,
	reason, actorID, actorUsername string,
) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.NewLedgerError(userID, string(entity.KindCredit), amount, actorID, errs.ErrInvalidAmount)
	}

	user, err := s.ledgerRepo.Credit(ctx, userID, username, amount, reason, actorID, actorUsername)
	if err != nil {
		s.logger.Error("Failed to credit miles", map[string]any{
			"user_id":  userID,
			"amount":   amount,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.invalidateLeaderboard(ctx)

	s.logger.Info("Miles credited", map[string]any{
		"user_id":     userID,
		"amount":      amount,
		"new_balance": user.Miles,
		"actor_id":    actorID,
	})

	return user, nil
}
