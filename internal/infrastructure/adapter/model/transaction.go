package model

import (
	"time"
)

// Transaction represents the database model for the audit log. Rows are
// append-only: never updated or deleted individually.
type Transaction struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        string    `gorm:"not null;size:64;index"`
	Amount        int64     `gorm:"not null"`
	Kind          string    `gorm:"not null;size:16"`
	Reason        string    `gorm:"type:text"`
	ActorID       string    `gorm:"not null;size:64"`
	ActorUsername string    `gorm:"not null;size:255"`
	Timestamp     time.Time `gorm:"not null;index"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
