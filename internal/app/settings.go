package app

import (
	"errors"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openkasse/cashierd/internal/domain"
)

// SettingsManager reads and writes runtime settings stored in sys_config.
// Values are stored as strings and converted on read.
type SettingsManager struct {
	db *gorm.DB
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db}
}

func (m *SettingsManager) GetString(category, name string) string {
	var setting domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("failed to read setting",
				zap.String("key", category+"."+name), zap.Error(err))
		}
		return ""
	}
	return setting.Value
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

// Set updates an existing setting or creates it.
func (m *SettingsManager) Set(category, name, value string) error {
	res := m.db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	}
	return nil
}
