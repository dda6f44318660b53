package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository implements persistence.LedgerRepository using GORM.
//
// Each mutating method runs as one database transaction that locks the
// user row, applies the balance change and appends the audit row. The row
// lock serializes concurrent mutations on the same user; different users
// never contend.
type LedgerRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// userModelToEntity converts a user model to an entity
func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Miles:     m.Miles,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// userEntityToModel converts a user entity to its database model
func userEntityToModel(u *entity.User) model.User {
	return model.User{
		ID:        u.ID,
		Username:  u.Username,
		Miles:     u.Miles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// txEntityToModel converts a transaction entity to its database model
func txEntityToModel(t *entity.Transaction) model.Transaction {
	return model.Transaction{
		UserID:        t.UserID,
		Amount:        t.Amount,
		Kind:          string(t.Kind),
		Reason:        t.Reason,
		ActorID:       t.ActorID,
		ActorUsername: t.ActorUsername,
		Timestamp:     t.Timestamp,
	}
}

// txModelToEntity converts a transaction model to an entity
func txModelToEntity(m *model.Transaction) entity.Transaction {
	return entity.Transaction{
		Seq:           m.Seq,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Kind:          entity.TransactionKind(m.Kind),
		Reason:        m.Reason,
		ActorID:       m.ActorID,
		ActorUsername: m.ActorUsername,
		Timestamp:     m.Timestamp,
	}
}

// storageError standardizes database error handling
func (r *LedgerRepository) storageError(operation string, err error, userID string) error {
	if r.errorClassifier.IsLockError(err) {
		r.logger.Warn("Row lock contention", map[string]any{
			"operation": operation,
			"user_id":   userID,
			"error":     err.Error(),
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
}

// GetUser retrieves a user by ID, no side effects.
func (r *LedgerRepository) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.storageError("getting user", result.Error, userID)
	}

	return userModelToEntity(&userModel), nil
}

// GetOrCreateUser returns the existing user, refreshing the cached
// username if it changed, or creates a new zero-balance user.
func (r *LedgerRepository) GetOrCreateUser(ctx context.Context, userID, username string) (*entity.User, error) {
	var userModel model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.lockOrCreateUser(tx, userID, username)
		if err != nil {
			return err
		}
		userModel = *m
		return nil
	})
	if err != nil {
		return nil, r.storageError("getting or creating user", err, userID)
	}

	return userModelToEntity(&userModel), nil
}

// lockOrCreateUser fetches the user row with an exclusive lock inside tx,
// creating a zero-balance row if none exists. The cached username is
// refreshed when it differs.
func (r *LedgerRepository) lockOrCreateUser(tx *gorm.DB, userID, username string) (*model.User, error) {
	var userModel model.User
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userModel, "id = ?", userID)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		user, err := entity.NewUser(userID, username, r.timeProvider)
		if err != nil {
			return nil, err
		}
		userModel = userEntityToModel(user)
		if err := tx.Create(&userModel).Error; err != nil {
			return nil, err
		}
		return &userModel, nil
	}

	if username != "" && userModel.Username != username {
		userModel.Username = username
		if err := tx.Model(&userModel).Update("username", username).Error; err != nil {
			return nil, err
		}
	}

	return &userModel, nil
}

// applyBalanceChange updates the locked user row and appends the audit
// row inside tx. Both writes carry the same timestamp and commit
// together or not at all.
func (r *LedgerRepository) applyBalanceChange(
	tx *gorm.DB,
	userModel *model.User,
	newMiles int64,
	recordedAmount int64,
	kind entity.TransactionKind,
	reason, actorID, actorUsername string,
) error {
	audit, err := entity.NewTransaction(userModel.ID, recordedAmount, kind, reason, actorID, actorUsername, r.timeProvider)
	if err != nil {
		return err
	}

	userModel.Miles = newMiles
	userModel.UpdatedAt = audit.Timestamp

	result := tx.Model(userModel).Updates(map[string]interface{}{
		"miles":      userModel.Miles,
		"username":   userModel.Username,
		"updated_at": userModel.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	auditRow := txEntityToModel(audit)
	return tx.Create(&auditRow).Error
}

// Credit atomically increases the balance and appends a credit row.
func (r *LedgerRepository) Credit(
	ctx context.Context,
	userID, username string,
	amount int64,
	reason, actorID, actorUsername string,
) (*entity.User, error) {
	var userModel model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.lockOrCreateUser(tx, userID, username)
		if err != nil {
			return err
		}

		if err := r.applyBalanceChange(tx, m, m.Miles+amount, amount, entity.KindCredit, reason, actorID, actorUsername); err != nil {
			return err
		}

		userModel = *m
		return nil
	})
	if err != nil {
		return nil, r.storageError("crediting miles", err, userID)
	}

	return userModelToEntity(&userModel), nil
}

// Debit atomically decreases the balance and appends a debit row. The
// balance check runs against the locked row, never a stale read. On an
// insufficient balance the transaction rolls back with no audit row.
func (r *LedgerRepository) Debit(
	ctx context.Context,
	userID, username string,
	amount int64,
	reason, actorID, actorUsername string,
) (*entity.User, error) {
	var userModel model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.lockOrCreateUser(tx, userID, username)
		if err != nil {
			return err
		}

		if !userModelToEntity(m).CanDebit(amount) {
			return errs.NewInsufficientBalanceError(userID, m.Miles, amount)
		}

		if err := r.applyBalanceChange(tx, m, m.Miles-amount, amount, entity.KindDebit, reason, actorID, actorUsername); err != nil {
			return err
		}

		userModel = *m
		return nil
	})
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			return nil, err
		}
		return nil, r.storageError("debiting miles", err, userID)
	}

	return userModelToEntity(&userModel), nil
}

// SetAbsolute atomically overwrites the balance and appends a set row
// recording the signed difference with an auto-generated reason. It is an
// authoritative override and performs no insufficiency check.
func (r *LedgerRepository) SetAbsolute(
	ctx context.Context,
	userID, username string,
	amount int64,
	actorID, actorUsername string,
) (*entity.User, error) {
	var userModel model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.lockOrCreateUser(tx, userID, username)
		if err != nil {
			return err
		}

		oldMiles := m.Miles
		reason := entity.SetReason(oldMiles, amount)

		if err := r.applyBalanceChange(tx, m, amount, amount-oldMiles, entity.KindSet, reason, actorID, actorUsername); err != nil {
			return err
		}

		userModel = *m
		return nil
	})
	if err != nil {
		return nil, r.storageError("setting miles", err, userID)
	}

	return userModelToEntity(&userModel), nil
}

// Leaderboard returns positive balances descending by miles, ties broken
// by insertion order.
func (r *LedgerRepository) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	var rows []model.User
	result := r.db.WithContext(ctx).
		Where("miles > 0").
		Order("miles DESC, created_at ASC, id ASC").
		Limit(limit).
		Find(&rows)

	if result.Error != nil {
		return nil, r.storageError("loading leaderboard", result.Error, "")
	}

	entries := make([]entity.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entity.LeaderboardEntry{
			UserID:   row.ID,
			Username: row.Username,
			Miles:    row.Miles,
		})
	}
	return entries, nil
}

// UserTransactions returns a user's audit rows, most recent first.
func (r *LedgerRepository) UserTransactions(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	var rows []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, seq DESC").
		Limit(limit).
		Find(&rows)

	if result.Error != nil {
		return nil, r.storageError("loading user transactions", result.Error, userID)
	}

	transactions := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, txModelToEntity(&rows[i]))
	}
	return transactions, nil
}

// transactionFeedRow is the scan target for the global feed join.
type transactionFeedRow struct {
	model.Transaction
	CurrentUsername string
}

// AllTransactions returns the global audit feed joined with each user's
// current username, most recent first.
func (r *LedgerRepository) AllTransactions(ctx context.Context, limit int) ([]entity.TransactionWithUser, error) {
	var rows []transactionFeedRow
	result := r.db.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, users.username AS current_username").
		Joins("JOIN users ON users.id = transactions.user_id").
		Order("transactions.timestamp DESC, transactions.seq DESC").
		Limit(limit).
		Scan(&rows)

	if result.Error != nil {
		return nil, r.storageError("loading transaction feed", result.Error, "")
	}

	feed := make([]entity.TransactionWithUser, 0, len(rows))
	for i := range rows {
		feed = append(feed, entity.TransactionWithUser{
			Transaction: txModelToEntity(&rows[i].Transaction),
			Username:    rows[i].CurrentUsername,
		})
	}
	return feed, nil
}

// statsRow is the scan target for the aggregate snapshot query.
type statsRow struct {
	TotalUsers int64
	TotalMiles int64
	AvgMiles   float64
	MaxMiles   int64
}

// Stats returns an aggregate snapshot over all users in a single query.
func (r *LedgerRepository) Stats(ctx context.Context) (*entity.Stats, error) {
	var row statsRow
	result := r.db.WithContext(ctx).
		Table("users").
		Select("COUNT(*) AS total_users, COALESCE(SUM(miles), 0) AS total_miles, COALESCE(AVG(miles), 0) AS avg_miles, COALESCE(MAX(miles), 0) AS max_miles").
		Scan(&row)

	if result.Error != nil {
		return nil, r.storageError("loading stats", result.Error, "")
	}

	return &entity.Stats{
		TotalUsers: row.TotalUsers,
		TotalMiles: row.TotalMiles,
		AvgMiles:   row.AvgMiles,
		MaxMiles:   row.MaxMiles,
	}, nil
}
