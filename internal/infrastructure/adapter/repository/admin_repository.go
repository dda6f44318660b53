package repository

import (
	"context"
	"fmt"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/domain/port/persistence"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// backupTimestampLayout names snapshot tables; table names cannot carry
// colons or dashes.
const backupTimestampLayout = "20060102_150405"

// AdminRepository implements persistence.AdminRepository using GORM.
type AdminRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAdminRepository creates a new AdminRepository instance
func NewAdminRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AdminRepository {
	return &AdminRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AllUsers returns every user, descending by miles.
func (r *AdminRepository) AllUsers(ctx context.Context) ([]entity.User, error) {
	var rows []model.User
	result := r.db.WithContext(ctx).Order("miles DESC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}

	users := make([]entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *userModelToEntity(&rows[i]))
	}
	return users, nil
}

// SearchUsersByNamePrefix returns users whose username starts with the
// query, descending by miles.
func (r *AdminRepository) SearchUsersByNamePrefix(ctx context.Context, query string) ([]entity.User, error) {
	var rows []model.User
	result := r.db.WithContext(ctx).
		Where("username LIKE ?", query+"%").
		Order("miles DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, result.Error.Error())
	}

	users := make([]entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *userModelToEntity(&rows[i]))
	}
	return users, nil
}

// Counts returns row totals across the three tables.
func (r *AdminRepository) Counts(ctx context.Context) (*persistence.Counts, error) {
	var counts persistence.Counts

	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&counts.Users).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	if err := r.db.WithContext(ctx).Model(&model.StaffMember{}).Count(&counts.Staff).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Count(&counts.Transactions).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	return &counts, nil
}

// WipeAll deletes all transactions, users and staff in a single database
// transaction. Irreversible; the CLI gates it behind explicit
// confirmation, the repository does not.
func (r *AdminRepository) WipeAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Transactions first: they reference users.
		if err := tx.Where("1 = 1").Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.User{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.StaffMember{}).Error
	})
	if err != nil {
		r.logger.Error("Failed to wipe data", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	r.logger.Warn("All ledger data wiped", nil)
	return nil
}

// Backup snapshots the three tables into timestamped copies on the
// database side and returns the snapshot label.
func (r *AdminRepository) Backup(ctx context.Context) (string, error) {
	label := r.timeProvider.Now().UTC().Format(backupTimestampLayout)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"users", "transactions", "staff"} {
			stmt := fmt.Sprintf("CREATE TABLE %s_backup_%s AS SELECT * FROM %s", table, label, table)
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to back up ledger tables", map[string]any{
			"label": label,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	r.logger.Info("Ledger tables backed up", map[string]any{
		"label": label,
	})
	return label, nil
}
