package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coremocks "github.com/skyloyalty/miles-ledger/mocks/port/core"
	persistencemocks "github.com/skyloyalty/miles-ledger/mocks/port/persistence"
)

func TestService_AddStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("should grant the staff role", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Add", ctx, "user-1", "alice").Return(nil)
		mockLogger.On("Info", "Staff member added", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, mockLogger)

		err := service.AddStaff(ctx, "user-1", "alice")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject an empty user ID", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, mockLogger)

		err := service.AddStaff(ctx, "", "alice")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		mockRepo.AssertNotCalled(t, "Add")
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Add", ctx, "user-1", "alice").Return(errs.ErrStorageUnavailable)
		mockLogger.On("Error", "Failed to add staff member", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, mockLogger)

		err := service.AddStaff(ctx, "user-1", "alice")

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func TestService_RemoveStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("should revoke the staff role", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("Remove", ctx, "user-1").Return(nil)
		mockLogger.On("Info", "Staff member removed", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockRepo, mockLogger)

		err := service.RemoveStaff(ctx, "user-1")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject an empty user ID", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, mockLogger)

		err := service.RemoveStaff(ctx, "")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		mockRepo.AssertNotCalled(t, "Remove")
	})
}

func TestService_IsStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("should report roster membership", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		mockRepo.On("IsStaff", ctx, "user-1").Return(true, nil)

		service := NewService(mockRepo, mockLogger)

		isStaff, err := service.IsStaff(ctx, "user-1")

		assert.NoError(t, err)
		assert.True(t, isStaff)
	})

	t.Run("should treat an empty user ID as not staff", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		service := NewService(mockRepo, mockLogger)

		isStaff, err := service.IsStaff(ctx, "")

		assert.NoError(t, err)
		assert.False(t, isStaff)
		mockRepo.AssertNotCalled(t, "IsStaff")
	})
}

func TestService_ListStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the roster", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockStaffRepository)
		mockLogger := new(coremocks.MockLogger)

		roster := []entity.StaffMember{
			{UserID: "user-1", Username: "alice"},
			{UserID: "user-2", Username: "bob"},
		}
		mockRepo.On("List", ctx).Return(roster, nil)

		service := NewService(mockRepo, mockLogger)

		members, err := service.ListStaff(ctx)

		assert.NoError(t, err)
		assert.Len(t, members, 2)
	})
}
