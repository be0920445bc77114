package entity

import (
	"errors"
	"time"
)

type PostStatus string

const (
	StatusPending  PostStatus = "pending"
	StatusApproved PostStatus = "approved"
	StatusRejected PostStatus = "rejected"
	StatusRemoved  PostStatus = "removed"
)

// ModeratedPost is the moderation queue's view of a post.
type ModeratedPost struct {
	ID           string     `json:"id"`
	CreatorID    string     `json:"creator_id"`
	Title        string     `json:"title"`
	Caption      string     `json:"caption"`
	Visibility   string     `json:"visibility"`
	IsNSFW       bool       `json:"is_nsfw"`
	UnlockPrice  int        `json:"unlock_price"`
	MediaURL     string     `json:"media_url"`
	Status       PostStatus `json:"status"`
	RejectReason string     `json:"reject_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrAlreadyResolved = errors.New("post already moderated")
	ErrInvalidFee      = errors.New("fee percent must be between 0 and 100")
)
