package entity

import "time"

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
	ID           string         `json:"id"`
	CreatorID    string         `json:"creator_id"`
	Title        string         `json:"title"`
	Caption      string         `json:"caption"`
	Visibility   PostVisibility `json:"visibility"`
	IsNSFW       bool           `json:"is_nsfw"`
	UnlockPrice  int            `json:"unlock_price"`
	MediaURL     string         `json:"media_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Status       PostStatus     `json:"status"`
	RejectReason string         `json:"reject_reason,omitempty"`
	Views        int            `json:"views"`
	Purchases    int            `json:"purchases"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
