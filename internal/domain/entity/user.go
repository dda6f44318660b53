package entity

import (
	"time"

	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
)

// User represents a member of the miles program. Users are created lazily
// on their first ledger interaction with a zero balance.
type User struct {
	ID        string    // Stable external identifier (issued by the calling platform)
	Username  string    // Last-seen display name, refreshed on every touch
	Miles     int64     // Current balance, never negative
	CreatedAt time.Time // When the user was first seen
	UpdatedAt time.Time // When the user was last touched by a ledger operation
}

// NewUser creates a fresh zero-balance user.
func NewUser(id, username string, timeProvider coreport.TimeProvider) (*User, error) {
	if id == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Username:  username,
		Miles:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDebit reports whether the balance covers a deduction of amount.
func (u *User) CanDebit(amount int64) bool {
	return u.Miles >= amount
}
