package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Follow struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	ViewerID  string         `gorm:"type:uuid;not null;uniqueIndex:ux_follow_pair,priority:1" json:"viewer_id"`
	CreatorID string         `gorm:"type:uuid;not null;uniqueIndex:ux_follow_pair,priority:2" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
