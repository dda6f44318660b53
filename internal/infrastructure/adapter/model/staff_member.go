package model

import (
	"time"
)

// StaffMember represents the database model for the staff roster
type StaffMember struct {
	UserID   string    `gorm:"primaryKey;size:64"`
	Username string    `gorm:"not null;size:255"`
	AddedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for StaffMember
func (StaffMember) TableName() string {
	return "staff"
}
