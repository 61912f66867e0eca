package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openkasse/cashierd/config"
	"github.com/openkasse/cashierd/internal/domain"
)

// getDatabase opens the relational store. Postgres for a shared deployment,
// sqlite in the workdir for the ordinary single-terminal setup.
func getDatabase(cfg config.DatabaseConfig, workdir string) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port,
		)
		dialector = postgres.Open(dsn)
	default:
		name := cfg.Name
		if name == "" {
			name = "cashier.db"
		}
		// cart item cascades rely on foreign keys being enforced
		dsn := filepath.Join(workdir, name) + "?_pragma=foreign_keys(1)"
		dialector = sqlite.Open(dsn)
	}

	logLevel := gormlogger.Silent
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		zap.S().Fatalf("failed to connect database: %v", err)
	}
	return db
}

// defaultSettings are created on first start when missing
var defaultSettings = []domain.SysConfig{
	{Sort: 1, Type: "cashier", Name: "Currency", Value: "CHF", Remark: "Currency label printed on receipts"},
	{Sort: 2, Type: "cashier", Name: "CartRetentionDays", Value: "30", Remark: "Unpaid carts older than this many days are purged"},
	{Sort: 3, Type: "cashier", Name: "SeedDemoCatalog", Value: "true", Remark: "Seed a demo catalog when the catalog is empty"},
}

// checkSettings initializes missing settings rows with their defaults
func (a *Application) checkSettings() {
	for _, setting := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", setting.Type, setting.Name).
			Count(&count)

		if count == 0 {
			if err := a.gormDB.Create(&setting).Error; err != nil {
				zap.L().Error("failed to create default setting",
					zap.String("name", setting.Name),
					zap.Error(err))
			} else {
				zap.L().Info("initialized setting",
					zap.String("key", setting.Type+"."+setting.Name),
					zap.String("default", setting.Value))
			}
		}
	}
}

// checkCatalog seeds a small demo catalog so a fresh terminal has something
// to sell. Runs only when the catalog is completely empty.
func (a *Application) checkCatalog() {
	seed := NewSettingsManager(a.gormDB).GetBool("cashier", "SeedDemoCatalog")
	if !seed {
		return
	}

	var count int64
	a.gormDB.Model(&domain.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaultCatalog := map[string][]domain.Article{
		"Beverages": {
			{Name: "Coffee", Price: decimal.NewFromFloat(3.5)},
			{Name: "Mineral Water", Price: decimal.NewFromFloat(1.5)},
		},
		"Snacks": {
			{Name: "Croissant", Price: decimal.NewFromFloat(2.0)},
			{Name: "Sandwich", Price: decimal.NewFromFloat(6.5)},
		},
	}

	for name, articles := range defaultCatalog {
		category := domain.Category{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := a.gormDB.Create(&category).Error; err != nil {
			zap.L().Error("failed to create default category", zap.String("name", name), zap.Error(err))
			continue
		}
		for _, article := range articles {
			article.CategoryID = category.ID
			if err := a.gormDB.Create(&article).Error; err != nil {
				zap.L().Error("failed to create default article", zap.String("name", article.Name), zap.Error(err))
			}
		}
		zap.L().Info("initialized default category",
			zap.String("name", name),
			zap.Int("articles", len(articles)))
	}
}
