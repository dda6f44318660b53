package roster

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/domain/port/persistence"
)

// Service manages the staff roster. Grants and revokes are idempotent:
// granting an existing member only refreshes the cached username, and
// revoking a non-member is a no-op.
type Service struct {
	staffRepo persistence.StaffRepository
	logger    coreport.Logger
}

// NewService creates a new roster service.
func NewService(staffRepo persistence.StaffRepository, logger coreport.Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// AddStaff grants the staff role to a user.
func (s *Service) AddStaff(ctx context.Context, userID, username string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}

	if err := s.staffRepo.Add(ctx, userID, username); err != nil {
		s.logger.Error("Failed to add staff member", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("Staff member added", map[string]any{
		"user_id":  userID,
		"username": username,
	})
	return nil
}

// RemoveStaff revokes the staff role from a user.
func (s *Service) RemoveStaff(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}

	if err := s.staffRepo.Remove(ctx, userID); err != nil {
		s.logger.Error("Failed to remove staff member", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("Staff member removed", map[string]any{
		"user_id": userID,
	})
	return nil
}

// IsStaff reports whether the user is on the roster.
func (s *Service) IsStaff(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.staffRepo.IsStaff(ctx, userID)
}

// ListStaff returns the roster ascending by username.
func (s *Service) ListStaff(ctx context.Context) ([]entity.StaffMember, error) {
	return s.staffRepo.List(ctx)
}
