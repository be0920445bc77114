package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type ReferenceType string

const (
	ReferenceSubscription ReferenceType = "subscription"
	ReferenceUnlock       ReferenceType = "unlock"
	ReferenceTip          ReferenceType = "tip"
	ReferenceLivestream   ReferenceType = "livestream"
)

type Order struct {
	ID                string        `gorm:"type:uuid;primary_key" json:"id"`
	UserID            string        `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatorID         string        `gorm:"type:uuid;index" json:"creator_id,omitempty"`
	ReferenceType     ReferenceType `gorm:"type:varchar(20);not null" json:"reference_type"`
	ReferenceID       string        `gorm:"type:uuid;not null" json:"reference_id"`
	Amount            int           `gorm:"not null" json:"amount"` // Stars, smallest unit
	FeePercent        int           `gorm:"not null" json:"fee_percent"`
	Fee               int           `gorm:"not null" json:"fee"`
	Net               int           `gorm:"not null" json:"net"`
	Status            OrderStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
