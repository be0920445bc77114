package model

import (
	"time"

	"gorm.io/gorm"
)

type PostModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID    string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Caption      string         `gorm:"type:text" json:"caption"`
	Visibility   string         `gorm:"type:varchar(20);default:'public'" json:"visibility"`
	IsNSFW       bool           `gorm:"column:is_nsfw;default:false" json:"is_nsfw"`
	UnlockPrice  int            `gorm:"default:0" json:"unlock_price"`
	MediaURL     string         `gorm:"type:varchar(500)" json:"media_url"`
	Status       string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RejectReason string         `gorm:"type:text" json:"reject_reason"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

type PlatformSettingModel struct {
	Key       string    `gorm:"type:varchar(100);primary_key" json:"key"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformSettingModel) TableName() string {
	return "platform_settings"
}
