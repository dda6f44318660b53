package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Credit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error) {
	ret := m.Called(ctx, userID, username, amount, reason, actorID, actorUsername)
	user, _ := ret.Get(0).(*entity.User)
	return user, ret.Error(1)
}

func (m *mockLedgerService) Debit(ctx context.Context, userID, username string, amount int64, reason, actorID, actorUsername string) (*entity.User, error) {
	ret := m.Called(ctx, userID, username, amount, reason, actorID, actorUsername)
	user, _ := ret.Get(0).(*entity.User)
	return user, ret.Error(1)
}

func (m *mockLedgerService) SetAbsolute(ctx context.Context, userID, username string, amount int64, actorID, actorUsername string) (*entity.User, error) {
	ret := m.Called(ctx, userID, username, amount, actorID, actorUsername)
	user, _ := ret.Get(0).(*entity.User)
	return user, ret.Error(1)
}

func (m *mockLedgerService) GetBalance(ctx context.Context, userID string) (*entity.User, error) {
	ret := m.Called(ctx, userID)
	user, _ := ret.Get(0).(*entity.User)
	return user, ret.Error(1)
}

func (m *mockLedgerService) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	ret := m.Called(ctx, limit)
	entries, _ := ret.Get(0).([]entity.LeaderboardEntry)
	return entries, ret.Error(1)
}

func (m *mockLedgerService) UserHistory(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	ret := m.Called(ctx, userID, limit)
	transactions, _ := ret.Get(0).([]entity.Transaction)
	return transactions, ret.Error(1)
}

func (m *mockLedgerService) GlobalHistory(ctx context.Context, limit int) ([]entity.TransactionWithUser, error) {
	ret := m.Called(ctx, limit)
	feed, _ := ret.Get(0).([]entity.TransactionWithUser)
	return feed, ret.Error(1)
}

func (m *mockLedgerService) Stats(ctx context.Context) (*entity.Stats, error) {
	ret := m.Called(ctx)
	stats, _ := ret.Get(0).(*entity.Stats)
	return stats, ret.Error(1)
}

type mockRosterService struct {
	mock.Mock
}

func (m *mockRosterService) AddStaff(ctx context.Context, userID, username string) error {
	return m.Called(ctx, userID, username).Error(0)
}

func (m *mockRosterService) RemoveStaff(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRosterService) ListStaff(ctx context.Context) ([]entity.StaffMember, error) {
	ret := m.Called(ctx)
	members, _ := ret.Get(0).([]entity.StaffMember)
	return members, ret.Error(1)
}

type mockAccessPolicy struct {
	mock.Mock
}

func (m *mockAccessPolicy) CanViewOtherHistory(ctx context.Context, actorID string) (bool, error) {
	ret := m.Called(ctx, actorID)
	return ret.Bool(0), ret.Error(1)
}

func (m *mockAccessPolicy) CanMutateBalances(ctx context.Context, actorID string) (bool, error) {
	ret := m.Called(ctx, actorID)
	return ret.Bool(0), ret.Error(1)
}

func (m *mockAccessPolicy) CanManageStaff(actorID string, isAdministrator bool) bool {
	return m.Called(actorID, isAdministrator).Bool(0)
}
