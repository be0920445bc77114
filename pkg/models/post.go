package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusPending  PostStatus = "pending"
	StatusApproved PostStatus = "approved"
	StatusRejected PostStatus = "rejected"
	StatusRemoved  PostStatus = "removed"
)

type PostVisibility string

const (
	VisibilityPublic      PostVisibility = "public"
	VisibilityFollowers   PostVisibility = "followers"
	VisibilitySubscribers PostVisibility = "subscribers"
)

type Post struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID    string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title        string         `gorm:"not null" json:"title"`
	Caption      string         `json:"caption"`
	Visibility   PostVisibility `gorm:"type:varchar(20);default:'public'" json:"visibility"`
	IsNSFW       bool           `gorm:"default:false" json:"is_nsfw"`
	UnlockPrice  int            `gorm:"default:0" json:"unlock_price"` // Stars, 0 = free
	MediaURL     string         `json:"media_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Status       PostStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RejectReason string         `json:"reject_reason,omitempty"`
	Views        int            `gorm:"default:0" json:"views"`
	Purchases    int            `gorm:"default:0" json:"purchases"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
