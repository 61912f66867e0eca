package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openkasse/cashierd/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "catalog_test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// TestCategoryRepository_CreateAndList verifies categories round-trip and
// list in creation order.
func TestCategoryRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Beverages")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Snacks")
	require.NoError(t, err)

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, first, categories[0].ID)
	assert.Equal(t, "Beverages", categories[0].Name)
	assert.Equal(t, second, categories[1].ID)
}

// TestCategoryRepository_GetMissing verifies ErrNotFound on unknown ids.
func TestCategoryRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)

	_, err := repo.GetByID(context.Background(), 4711)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestCategoryRepository_DeleteCascadesArticles verifies a category delete
// takes its articles with it.
func TestCategoryRepository_DeleteCascadesArticles(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	articles := NewGormArticleRepository(db)
	ctx := context.Background()

	categoryID, err := categories.Create(ctx, "Beverages")
	require.NoError(t, err)
	articleID, err := articles.Create(ctx, "Coffee", decimal.RequireFromString("3.5"), categoryID)
	require.NoError(t, err)

	category, err := categories.GetByID(ctx, categoryID)
	require.NoError(t, err)
	require.NoError(t, categories.Delete(ctx, category))

	_, err = articles.GetByID(ctx, articleID)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestArticleRepository_CreateValidatesCategory verifies an article cannot
// reference a missing category.
func TestArticleRepository_CreateValidatesCategory(t *testing.T) {
	db := newTestDB(t)
	articles := NewGormArticleRepository(db)

	_, err := articles.Create(context.Background(), "Coffee", decimal.RequireFromString("3.5"), 4711)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestArticleRepository_SearchCaseInsensitive verifies substring search
// ignores case.
func TestArticleRepository_SearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	articles := NewGormArticleRepository(db)
	ctx := context.Background()

	categoryID, err := categories.Create(ctx, "Beverages")
	require.NoError(t, err)
	_, err = articles.Create(ctx, "Espresso", decimal.RequireFromString("2.5"), categoryID)
	require.NoError(t, err)
	_, err = articles.Create(ctx, "Cappuccino", decimal.RequireFromString("4.0"), categoryID)
	require.NoError(t, err)

	for _, query := range []string{"espresso", "ESPRESSO", "press"} {
		found, err := articles.List(ctx, ArticleFilter{Search: query})
		require.NoError(t, err)
		require.Len(t, found, 1, "query %q", query)
		assert.Equal(t, "Espresso", found[0].Name)
	}

	found, err := articles.List(ctx, ArticleFilter{Search: "   "})
	require.NoError(t, err)
	assert.Len(t, found, 2, "blank query matches everything")
}

// TestArticleRepository_ListByCategory verifies the category filter and its
// existence check.
func TestArticleRepository_ListByCategory(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	articles := NewGormArticleRepository(db)
	ctx := context.Background()

	beverages, err := categories.Create(ctx, "Beverages")
	require.NoError(t, err)
	snacks, err := categories.Create(ctx, "Snacks")
	require.NoError(t, err)
	_, err = articles.Create(ctx, "Coffee", decimal.RequireFromString("3.5"), beverages)
	require.NoError(t, err)
	_, err = articles.Create(ctx, "Chips", decimal.RequireFromString("2.0"), snacks)
	require.NoError(t, err)

	found, err := articles.List(ctx, ArticleFilter{CategoryID: &beverages})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Coffee", found[0].Name)

	missing := int64(4711)
	_, err = articles.List(ctx, ArticleFilter{CategoryID: &missing})
	require.ErrorIs(t, err, ErrNotFound)
}

// TestArticleRepository_Update verifies updates persist and re-validate the
// target category.
func TestArticleRepository_Update(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	articles := NewGormArticleRepository(db)
	ctx := context.Background()

	categoryID, err := categories.Create(ctx, "Beverages")
	require.NoError(t, err)
	articleID, err := articles.Create(ctx, "Coffee", decimal.RequireFromString("3.5"), categoryID)
	require.NoError(t, err)

	article, err := articles.GetByID(ctx, articleID)
	require.NoError(t, err)

	article.Name = "Double Espresso"
	article.Price = decimal.RequireFromString("4.2")
	require.NoError(t, articles.Update(ctx, article))

	got, err := articles.GetByID(ctx, articleID)
	require.NoError(t, err)
	assert.Equal(t, "Double Espresso", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("4.2")))

	article.CategoryID = 4711
	require.ErrorIs(t, articles.Update(ctx, article), ErrNotFound)
}

// TestArticleRepository_UpdateMissingArticle verifies a vanished article
// cannot be updated.
func TestArticleRepository_UpdateMissingArticle(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	articles := NewGormArticleRepository(db)
	ctx := context.Background()

	categoryID, err := categories.Create(ctx, "Beverages")
	require.NoError(t, err)

	err = articles.Update(ctx, &domain.Article{ID: 4711, Name: "ghost", CategoryID: categoryID})
	require.ErrorIs(t, err, ErrNotFound)
}

// TestService_DeleteArticle verifies the service checks existence before
// deleting.
func TestService_DeleteArticle(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewGormCategoryRepository(db), NewGormArticleRepository(db))
	ctx := context.Background()

	categoryID, err := service.CreateCategory(ctx, "Beverages")
	require.NoError(t, err)
	articleID, err := service.CreateArticle(ctx, "Coffee", decimal.RequireFromString("3.5"), categoryID)
	require.NoError(t, err)

	require.NoError(t, service.DeleteArticle(ctx, articleID))
	require.ErrorIs(t, service.DeleteArticle(ctx, articleID), ErrNotFound)

	remaining, err := service.Articles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
