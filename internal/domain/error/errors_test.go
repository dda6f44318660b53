package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid request", ErrInvalidRequest, CodeInvalidRequest},
		{"invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"insufficient balance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"invalid user id", ErrInvalidUserID, CodeInvalidUserID},
		{"invalid kind", ErrInvalidKind, CodeInvalidKind},
		{"unauthorized", ErrUnauthorized, CodeUnauthorized},
		{"user not found", ErrUserNotFound, CodeUserNotFound},
		{"not found", ErrNotFound, CodeNotFound},
		{"storage unavailable", ErrStorageUnavailable, CodeStorageUnavailable},
		{"unknown error", errors.New("something else"), CodeInternalServer},
		{"wrapped storage error", fmt.Errorf("%w: connection refused", ErrStorageUnavailable), CodeStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("user-1", 30, 100)

	t.Run("should match the sentinel", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.True(t, IsInsufficientBalanceError(err))
	})

	t.Run("should carry balance and requested amount", func(t *testing.T) {
		var insufficientErr *InsufficientBalanceError
		assert.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, "user-1", insufficientErr.UserID)
		assert.Equal(t, int64(30), insufficientErr.CurrentBalance)
		assert.Equal(t, int64(100), insufficientErr.Requested)
	})

	t.Run("should render a useful message", func(t *testing.T) {
		assert.Contains(t, err.Error(), "user-1")
		assert.Contains(t, err.Error(), "30")
		assert.Contains(t, err.Error(), "100")
	})

	t.Run("should expose log fields", func(t *testing.T) {
		var insufficientErr *InsufficientBalanceError
		errors.As(err, &insufficientErr)
		fields := insufficientErr.LogFields()
		assert.Equal(t, int64(30), fields["current_balance"])
		assert.Equal(t, CodeInsufficientBalance, fields["error_code"])
	})
}

func TestLedgerError(t *testing.T) {
	err := NewLedgerError("user-1", "debit", 100, "staff-1", ErrInvalidAmount)

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, CodeInvalidAmount, ErrorCode(err))
	})

	t.Run("should carry the operation context", func(t *testing.T) {
		var ledgerErr *LedgerError
		assert.True(t, errors.As(err, &ledgerErr))
		assert.Equal(t, "user-1", ledgerErr.UserID)
		assert.Equal(t, "debit", ledgerErr.Kind)
		assert.Equal(t, int64(100), ledgerErr.Amount)
		assert.Equal(t, "staff-1", ledgerErr.ActorID)
	})

	t.Run("should expose log fields", func(t *testing.T) {
		var ledgerErr *LedgerError
		errors.As(err, &ledgerErr)
		fields := ledgerErr.LogFields()
		assert.Equal(t, "debit", fields["kind"])
		assert.Equal(t, CodeInvalidAmount, fields["error_code"])
	})
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidAmount))
}

func TestIsStorageError(t *testing.T) {
	assert.True(t, IsStorageError(fmt.Errorf("%w: timeout", ErrStorageUnavailable)))
	assert.False(t, IsStorageError(ErrUserNotFound))
}
