package persistence

import (
	"context"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
)

// StaffRepository owns the staff roster.
type StaffRepository interface {
	// Add inserts or replaces a roster entry. Granting an existing staff
	// member only refreshes the cached username.
	Add(ctx context.Context, userID, username string) error

	// Remove deletes a roster entry. Removing a non-member is a no-op.
	Remove(ctx context.Context, userID string) error

	// IsStaff reports whether the user is on the roster.
	IsStaff(ctx context.Context, userID string) (bool, error)

	// List returns the roster ascending by username.
	List(ctx context.Context) ([]entity.StaffMember, error)
}
