package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase records an entitlement: one row per (user, reference). The unique
// index is what makes entitlement grants safe under repeated confirmations.
type Purchase struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:ux_purchase_ref,priority:1" json:"user_id"`
	ReferenceType string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_purchase_ref,priority:2" json:"reference_type"`
	ReferenceID   string    `gorm:"type:uuid;not null;uniqueIndex:ux_purchase_ref,priority:3" json:"reference_id"`
	OrderID       string    `gorm:"type:uuid;index" json:"order_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
