package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerEntryModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     string    `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID      *string   `gorm:"type:uuid;index" json:"user_id"` // nil for the platform's own entries
	Amount      int       `gorm:"not null" json:"amount"`
	Role        string    `gorm:"type:varchar(20);not null" json:"role"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

func (e *LedgerEntryModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
