package entity

import "time"

// StaffMember marks a user as staff. Presence in the roster is the sole
// source of truth for the staff role.
type StaffMember struct {
	UserID   string
	Username string
	AddedAt  time.Time
}
