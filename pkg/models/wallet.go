package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wallet struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	StarsBalance int       `gorm:"default:0" json:"stars_balance"`
	TotalEarned  int       `gorm:"default:0" json:"total_earned"`
	TotalSpent   int       `gorm:"default:0" json:"total_spent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
