package dto

import "time"

// StaffMemberResponse represents one staff roster entry
type StaffMemberResponse struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	AddedAt  time.Time `json:"addedAt"`
}

// AddStaffRequest is the body for granting the staff role
type AddStaffRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Username     string `json:"username"`
	ActorID      string `json:"actorId" binding:"required"`
	ActorIsAdmin bool   `json:"actorIsAdmin"`
}
