package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	cachemocks "github.com/skyloyalty/miles-ledger/mocks/port/cache"
	coremocks "github.com/skyloyalty/miles-ledger/mocks/port/core"
	persistencemocks "github.com/skyloyalty/miles-ledger/mocks/port/persistence"
)

func TestService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the user", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("GetUser", ctx, "user-1").Return(&entity.User{ID: "user-1", Miles: 500}, nil)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.GetBalance(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(500), user.Miles)
	})

	t.Run("should reject an empty user ID", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.GetBalance(ctx, "")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		mockRepo.AssertNotCalled(t, "GetUser")
	})

	t.Run("should propagate not found", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("GetUser", ctx, "ghost").Return(nil, errs.ErrUserNotFound)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.GetBalance(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	entries := []entity.LeaderboardEntry{
		{UserID: "user-1", Username: "alice", Miles: 500},
		{UserID: "user-2", Username: "bob", Miles: 300},
	}

	t.Run("should pass a valid limit through", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Leaderboard", ctx, 5).Return(entries, nil)

		service := NewService(mockRepo, nil, mockLogger)

		result, err := service.Leaderboard(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
	})

	t.Run("should clamp an out-of-range limit to the default", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Leaderboard", ctx, DefaultLeaderboardLimit).Return(entries, nil).Twice()

		service := NewService(mockRepo, nil, mockLogger)

		_, err := service.Leaderboard(ctx, 0)
		assert.NoError(t, err)
		_, err = service.Leaderboard(ctx, 100)
		assert.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("should serve from the cache on a hit", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)
		mockCache := new(cachemocks.MockLeaderboardCache)

		mockCache.On("Get", ctx, 10).Return(entries, true)

		service := NewService(mockRepo, mockCache, mockLogger)

		result, err := service.Leaderboard(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockRepo.AssertNotCalled(t, "Leaderboard")
	})

	t.Run("should fill the cache on a miss", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)
		mockCache := new(cachemocks.MockLeaderboardCache)

		mockCache.On("Get", ctx, 10).Return(nil, false)
		mockRepo.On("Leaderboard", ctx, 10).Return(entries, nil)
		mockCache.On("Set", ctx, 10, entries).Return()

		service := NewService(mockRepo, mockCache, mockLogger)

		result, err := service.Leaderboard(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockCache.AssertExpectations(t)
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Leaderboard", ctx, 10).Return(nil, errs.ErrStorageUnavailable)
		mockLogger.On("Error", "Failed to load leaderboard", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, nil, mockLogger)

		result, err := service.Leaderboard(ctx, 10)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func TestService_UserHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("should default the limit when non-positive", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		transactions := []entity.Transaction{{Seq: 2, UserID: "user-1"}, {Seq: 1, UserID: "user-1"}}
		mockRepo.On("UserTransactions", ctx, "user-1", DefaultHistoryLimit).Return(transactions, nil)

		service := NewService(mockRepo, nil, mockLogger)

		result, err := service.UserHistory(ctx, "user-1", 0)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("should reject an empty user ID", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, nil, mockLogger)

		result, err := service.UserHistory(ctx, "", 10)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestService_GlobalHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("should default the limit when non-positive", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		feed := []entity.TransactionWithUser{
			{Transaction: entity.Transaction{Seq: 9, UserID: "user-2"}, Username: "bob"},
		}
		mockRepo.On("AllTransactions", ctx, DefaultFeedLimit).Return(feed, nil)

		service := NewService(mockRepo, nil, mockLogger)

		result, err := service.GlobalHistory(ctx, -1)

		assert.NoError(t, err)
		assert.Equal(t, "bob", result[0].Username)
	})
}

func TestService_GetOrCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should delegate to the repository", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		created := &entity.User{ID: "user-1", Username: "alice", Miles: 0}
		mockRepo.On("GetOrCreateUser", ctx, "user-1", "alice").Return(created, nil)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.GetOrCreateUser(ctx, "user-1", "alice")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), user.Miles)
	})

	t.Run("should reject an empty user ID", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, nil, mockLogger)

		user, err := service.GetOrCreateUser(ctx, "", "alice")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the aggregate snapshot", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		snapshot := &entity.Stats{TotalUsers: 3, TotalMiles: 900, AvgMiles: 300, MaxMiles: 500}
		mockRepo.On("Stats", ctx).Return(snapshot, nil)

		service := NewService(mockRepo, nil, mockLogger)

		stats, err := service.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(900), stats.TotalMiles)
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Stats", ctx).Return(nil, errs.ErrStorageUnavailable)
		mockLogger.On("Error", "Failed to load stats", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, nil, mockLogger)

		stats, err := service.Stats(ctx)

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}
