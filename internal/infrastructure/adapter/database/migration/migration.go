package migration

import (
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll creates the schema and the indexes the query paths rely on.
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Running database migrations", nil)

	if err := m.db.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.StaffMember{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}

// createIndexes creates the indexes behind history and feed queries.
// AutoMigrate already creates the tag-declared single-column indexes;
// these cover the composite orderings.
func (m *MigrationManager) createIndexes() error {
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_user_ts ON transactions (user_id, timestamp DESC, seq DESC)").Error; err != nil {
		return err
	}
	return m.db.Exec("CREATE INDEX IF NOT EXISTS idx_users_miles ON users (miles DESC) WHERE miles > 0").Error
}
