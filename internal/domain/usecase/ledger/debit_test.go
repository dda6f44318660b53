package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	cachemocks "github.com/skyloyalty/miles-ledger/mocks/port/cache"
	coremocks "github.com/skyloyalty/miles-ledger/mocks/port/core"
	persistencemocks "github.com/skyloyalty/miles-ledger/mocks/port/persistence"
)

func TestService_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("should subtract miles and return the updated user", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		updatedUser := &entity.User{ID: "user-1", Username: "alice", Miles: 70}
		mockRepo.On("Debit", ctx, "user-1", "alice", int64(30), "award redemption", "staff-1", "bob").
			Return(updatedUser, nil)
		mockLogger.On("Info", "Miles debited", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.Debit(ctx, "user-1", "alice", 30, "award redemption", "staff-1", "bob")

		assert.NoError(t, err)
		assert.Equal(t, int64(70), user.Miles)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should surface insufficient balance with details", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Debit", ctx, "user-1", "alice", int64(100), "", "staff-1", "bob").
			Return(nil, errs.NewInsufficientBalanceError("user-1", 30, 100))
		mockLogger.On("Warn", "Debit rejected, insufficient balance", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.Debit(ctx, "user-1", "alice", 100, "", "staff-1", "bob")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		var insufficientErr *errs.InsufficientBalanceError
		assert.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, int64(30), insufficientErr.CurrentBalance)
		assert.Equal(t, int64(100), insufficientErr.Requested)

		mockLogger.AssertExpectations(t)
	})

	t.Run("should not invalidate the cache on a failed debit", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)
		mockCache := new(cachemocks.MockLeaderboardCache)

		mockRepo.On("Debit", ctx, "user-1", "alice", int64(100), "", "staff-1", "bob").
			Return(nil, errs.NewInsufficientBalanceError("user-1", 30, 100))
		mockLogger.On("Warn", "Debit rejected, insufficient balance", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, mockCache, mockLogger)

		_, err := service.Debit(ctx, "user-1", "alice", 100, "", "staff-1", "bob")

		assert.Error(t, err)
		mockCache.AssertNotCalled(t, "Invalidate")
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.Debit(ctx, "user-1", "alice", 0, "", "staff-1", "bob")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		mockRepo.AssertNotCalled(t, "Debit")
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Debit", ctx, "user-1", "alice", int64(30), "", "staff-1", "bob").
			Return(nil, errs.ErrStorageUnavailable)
		mockLogger.On("Error", "Failed to debit miles", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.Debit(ctx, "user-1", "alice", 30, "", "staff-1", "bob")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}
