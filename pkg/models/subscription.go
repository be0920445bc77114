package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subscription struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	ViewerID  string         `gorm:"type:uuid;not null;uniqueIndex:ux_sub_pair,priority:1" json:"viewer_id"`
	CreatorID string         `gorm:"type:uuid;not null;uniqueIndex:ux_sub_pair,priority:2" json:"creator_id"`
	OrderID   string         `gorm:"type:uuid;uniqueIndex" json:"order_id,omitempty"`
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
