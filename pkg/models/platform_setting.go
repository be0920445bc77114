package models

import "time"

// DefaultPlatformFeePercent is the fallback when no platform_fee_percent
// setting row exists yet.
const DefaultPlatformFeePercent = 15

const SettingPlatformFeePercent = "platform_fee_percent"

type PlatformSetting struct {
	Key       string    `gorm:"primary_key" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
