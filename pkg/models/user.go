package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleViewer    UserRole = "viewer"
	RoleCreator   UserRole = "creator"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	TelegramID int64          `gorm:"uniqueIndex" json:"telegram_id"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Password   string         `json:"-"`
	Role       UserRole       `gorm:"type:varchar(20);default:'viewer'" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
