package model

import (
	"time"

	"gorm.io/gorm"
)

type FollowModel struct {
	ID        string         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ViewerID  string         `gorm:"type:uuid;not null" json:"viewer_id"`
	CreatorID string         `gorm:"type:uuid;not null" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FollowModel) TableName() string {
	return "follows"
}

type SubscriptionModel struct {
	ID        string         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
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

type PurchaseModel struct {
	ID            string    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        string    `gorm:"type:uuid;not null" json:"user_id"`
	ReferenceType string    `gorm:"type:varchar(20);not null" json:"reference_type"`
	ReferenceID   string    `gorm:"type:uuid;not null" json:"reference_id"`
	OrderID       string    `gorm:"type:uuid" json:"order_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}
