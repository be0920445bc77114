package model

import (
	"time"

	"gorm.io/gorm"
)

type PurchaseModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string    `gorm:"type:uuid;not null" json:"user_id"`
	ReferenceType string    `gorm:"type:varchar(20);not null" json:"reference_type"`
	ReferenceID   string    `gorm:"type:uuid;not null" json:"reference_id"`
	OrderID       string    `gorm:"type:uuid" json:"order_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

type SubscriptionModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	ViewerID  string         `gorm:"type:uuid;not null" json:"viewer_id"`
	CreatorID string         `gorm:"type:uuid;not null" json:"creator_id"`
	OrderID   string         `gorm:"type:uuid" json:"order_id"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

type PlatformSettingModel struct {
	Key       string    `gorm:"primary_key" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformSettingModel) TableName() string {
	return "platform_settings"
}
