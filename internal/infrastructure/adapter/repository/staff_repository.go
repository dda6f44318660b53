package repository

import (
	"context"
	"fmt"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StaffRepository implements persistence.StaffRepository using GORM.
type StaffRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewStaffRepository creates a new StaffRepository instance
func NewStaffRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *StaffRepository {
	return &StaffRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Add inserts or replaces a roster entry. A second grant for the same
// user only refreshes the cached username.
func (r *StaffRepository) Add(ctx context.Context, userID, username string) error {
	member := model.StaffMember{
		UserID:   userID,
		Username: username,
		AddedAt:  r.timeProvider.Now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username"}),
	}).Create(&member)

	if result.Error != nil {
		r.logger.Error("Failed to upsert staff member", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}
	return nil
}

// Remove deletes a roster entry. Removing a non-member is a no-op.
func (r *StaffRepository) Remove(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&model.StaffMember{}, "user_id = ?", userID)
	if result.Error != nil {
		r.logger.Error("Failed to delete staff member", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}
	return nil
}

// IsStaff reports whether the user is on the roster.
func (r *StaffRepository) IsStaff(ctx context.Context, userID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.StaffMember{}).
		Where("user_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

// List returns the roster ascending by username.
func (r *StaffRepository) List(ctx context.Context) ([]entity.StaffMember, error) {
	var rows []model.StaffMember
	result := r.db.WithContext(ctx).Order("username ASC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}

	members := make([]entity.StaffMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, entity.StaffMember{
			UserID:   row.UserID,
			Username: row.Username,
			AddedAt:  row.AddedAt,
		})
	}
	return members, nil
}
