package ledger

import (
	"context"
	"errors"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
)

// Debit decreases a user's balance by amount and appends a debit
// transaction. The balance check runs inside the same atomic unit as the
// deduction; on an insufficient balance nothing is written.
func (s *Service) Debit(
	ctx context.Context,
	userID, username string,
	amount int64,
	reason, actorID, actorUsername string,
) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.NewLedgerError(userID, string(entity.KindDebit), amount, actorID, errs.ErrInvalidAmount)
	}

	user, err := s.ledgerRepo.Debit(ctx, userID, username, amount, reason, actorID, actorUsername)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientBalance) {
			s.logger.Warn("Debit rejected, insufficient balance", map[string]any{
				"user_id":  userID,
				"amount":   amount,
				"actor_id": actorID,
			})
			return nil, err
		}
		s.logger.Error("Failed to debit miles", map[string]any{
			"user_id":  userID,
			"amount":   amount,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.invalidateLeaderboard(ctx)

	s.logger.Info("Miles debited", map[string]any{
		"user_id":     userID,
		"amount":      amount,
		"new_balance": user.Miles,
		"actor_id":    actorID,
	})

	return user, nil
}
