package checkout

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openkasse/cashierd/internal/catalog"
	"github.com/openkasse/cashierd/internal/domain"
)

// newTestDB opens a throwaway sqlite database with foreign keys enforced,
// matching the production single-terminal setup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "cashier_test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	return NewService(
		catalog.NewGormArticleRepository(db),
		NewGormCartRepository(db),
		NewGormCartItemRepository(db),
	)
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := domain.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func seedArticle(t *testing.T, db *gorm.DB, category *domain.Category, name, price string) *domain.Article {
	t.Helper()
	article := domain.Article{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&article).Error)
	return &article
}
