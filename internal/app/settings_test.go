package app

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openkasse/cashierd/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "app_test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// TestSettingsSetAndGet verifies values round-trip through sys_config with
// type conversion on read.
func TestSettingsSetAndGet(t *testing.T) {
	settings := NewSettingsManager(newTestDB(t))

	require.NoError(t, settings.Set("cashier", "Currency", "CHF"))
	require.NoError(t, settings.Set("cashier", "CartRetentionDays", "14"))
	require.NoError(t, settings.Set("cashier", "SeedDemoCatalog", "true"))

	assert.Equal(t, "CHF", settings.GetString("cashier", "Currency"))
	assert.Equal(t, int64(14), settings.GetInt64("cashier", "CartRetentionDays"))
	assert.True(t, settings.GetBool("cashier", "SeedDemoCatalog"))
}

// TestSettingsSetUpdatesInPlace verifies Set overwrites instead of creating
// duplicate rows.
func TestSettingsSetUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsManager(db)

	require.NoError(t, settings.Set("cashier", "Currency", "CHF"))
	require.NoError(t, settings.Set("cashier", "Currency", "EUR"))

	assert.Equal(t, "EUR", settings.GetString("cashier", "Currency"))

	var count int64
	require.NoError(t, db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", "cashier", "Currency").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestSettingsMissingKey verifies unknown keys read as zero values.
func TestSettingsMissingKey(t *testing.T) {
	settings := NewSettingsManager(newTestDB(t))

	assert.Equal(t, "", settings.GetString("cashier", "Nope"))
	assert.Equal(t, int64(0), settings.GetInt64("cashier", "Nope"))
	assert.False(t, settings.GetBool("cashier", "Nope"))
}
