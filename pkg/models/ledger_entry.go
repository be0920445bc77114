package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRole string

const (
	LedgerRoleUser     LedgerRole = "user"
	LedgerRoleCreator  LedgerRole = "creator"
	LedgerRolePlatform LedgerRole = "platform"
)

// LedgerEntry is append-only. Entries for one order always sum to zero.
type LedgerEntry struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     string     `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID      string     `gorm:"type:uuid;index" json:"user_id"`
	Amount      int        `gorm:"not null" json:"amount"` // signed, negative = debit
	Role        LedgerRole `gorm:"type:varchar(20);not null" json:"role"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
