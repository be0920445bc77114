package persistent

import (
	"strconv"

	"fanvault/pkg/models"
	"fanvault/services/admin/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	GetFeePercent() (int, error)
	SetFeePercent(percent int) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetFeePercent() (int, error) {
	var setting model.PlatformSettingModel
	err := r.db.Where("key = ?", models.SettingPlatformFeePercent).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return models.DefaultPlatformFeePercent, nil
	}
	if err != nil {
		return 0, err
	}

	percent, err := strconv.Atoi(setting.Value)
	if err != nil || percent < 0 || percent > 100 {
		return models.DefaultPlatformFeePercent, nil
	}
	return percent, nil
}

func (r *settingRepository) SetFeePercent(percent int) error {
	return r.db.Save(&model.PlatformSettingModel{
		Key:   models.SettingPlatformFeePercent,
		Value: strconv.Itoa(percent),
	}).Error
}
