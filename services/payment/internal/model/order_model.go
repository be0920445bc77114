package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderModel struct {
	ID                string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID            string     `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatorID         *string    `gorm:"type:uuid;index" json:"creator_id"` // nil for platform-level orders
	ReferenceType     string     `gorm:"type:varchar(20);not null" json:"reference_type"`
	ReferenceID       string     `gorm:"type:uuid;not null" json:"reference_id"`
	Amount            int        `gorm:"not null" json:"amount"`
	FeePercent        int        `gorm:"not null" json:"fee_percent"`
	Fee               int        `gorm:"not null" json:"fee"`
	Net               int        `gorm:"not null" json:"net"`
	Status            string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProviderPaymentID string     `gorm:"type:varchar(255)" json:"provider_payment_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
