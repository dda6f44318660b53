package ledger

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
)

// SetAbsolute overwrites a user's balance to exactly amount and appends a
// set transaction recording the signed difference. Amount must be zero or
// positive. The operation is an authoritative override: it does not reuse
// the debit insufficiency check, so the recorded delta may exceed what a
// debit could remove.
func (s *Service) SetAbsolute(
	ctx context.Context,
	userID, username string,
	amount int64,
	actorID, actorUsername string,
) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount < 0 {
		return nil, errs.NewLedgerError(userID, string(entity.KindSet), amount, actorID, errs.ErrInvalidAmount)
	}

	user, err := s.ledgerRepo.SetAbsolute(ctx, userID, username, amount, actorID, actorUsername)
	if err != nil {
		s.logger.Error("Failed to set miles", map[string]any{
			"user_id":  userID,
			"amount":   amount,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.invalidateLeaderboard(ctx)

	s.logger.Info("Miles set", map[string]any{
		"user_id":  userID,
		"miles":    user.Miles,
		"actor_id": actorID,
	})

	return user, nil
}
