package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeInvalidAmount       = 4001
	CodeInsufficientBalance = 4002
	CodeInvalidUserID       = 4003
	CodeInvalidKind         = 4004
	CodeUnauthorized        = 4030
	CodeUserNotFound        = 4040
	CodeNotFound            = 4041

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorageUnavailable = 5030
)

// Base error types
var (
	// ErrInvalidRequest is returned when the request itself is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidAmount is returned when a non-positive amount is supplied
	// where a positive amount is required, or a negative amount to a set.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a debit would drive the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidKind is returned when the transaction kind is not one of the allowed values
	ErrInvalidKind = errors.New("invalid transaction kind")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned by the dispatcher layer when the actor
	// may not perform the requested operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorageUnavailable is returned when the underlying persistence failed
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidKind):
		return CodeInvalidKind
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError carries the current balance and the requested
// amount for diagnostics when a debit is rejected.
type InsufficientBalanceError struct {
	UserID         string
	CurrentBalance int64
	Requested      int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: has %d miles, tried to deduct %d",
		e.UserID, e.CurrentBalance, e.Requested)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"current_balance": e.CurrentBalance,
		"requested":       e.Requested,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID string, currentBalance, requested int64) error {
	return &InsufficientBalanceError{
		UserID:         userID,
		CurrentBalance: currentBalance,
		Requested:      requested,
	}
}

// LedgerError represents a failed ledger operation with its context.
type LedgerError struct {
	UserID  string
	Kind    string
	Amount  int64
	ActorID string
	Err     error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed for user %s (amount: %d, actor: %s): %v",
		e.Kind, e.UserID, e.Amount, e.ActorID, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"kind":       e.Kind,
		"amount":     e.Amount,
		"actor_id":   e.ActorID,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger operation error
func NewLedgerError(userID, kind string, amount int64, actorID string, err error) error {
	return &LedgerError{
		UserID:  userID,
		Kind:    kind,
		Amount:  amount,
		ActorID: actorID,
		Err:     err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsStorageError checks if the error originated in the persistence layer
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
