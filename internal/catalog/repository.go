package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openkasse/cashierd/internal/domain"
)

// ErrNotFound is returned when a referenced category or article does not exist.
var ErrNotFound = errors.New("catalog: not found")

// CategoryRepository handles database operations for catalog categories
type CategoryRepository interface {
	// Create inserts a new category and returns its id
	Create(ctx context.Context, name string) (int64, error)

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List retrieves all categories in creation order
	List(ctx context.Context) ([]domain.Category, error)

	// Delete removes a category; its articles and their cart items cascade
	Delete(ctx context.Context, category *domain.Category) error
}

// ArticleFilter narrows an article listing. Zero values mean "no filter".
type ArticleFilter struct {
	CategoryID *int64
	Search     string // case-insensitive substring match on name
}

// ArticleRepository handles database operations for catalog articles
type ArticleRepository interface {
	// Create inserts a new article after validating the category exists
	Create(ctx context.Context, name string, price decimal.Decimal, categoryID int64) (int64, error)

	// GetByID retrieves an article by ID
	GetByID(ctx context.Context, id int64) (*domain.Article, error)

	// List retrieves articles matching the filter, in creation order
	List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)

	// Update persists name, price and category of an existing article
	Update(ctx context.Context, article *domain.Article) error

	// Delete removes an article; its cart items cascade
	Delete(ctx context.Context, article *domain.Article) error
}

// GormCategoryRepository is the GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM-based category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, name string) (int64, error) {
	category := domain.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		zap.L().Error("failed to create category", zap.String("name", name), zap.Error(err))
		return 0, err
	}
	return category.ID, nil
}

func (r *GormCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Delete(ctx context.Context, category *domain.Category) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, category.ID)
	if res.Error != nil {
		zap.L().Error("failed to delete category", zap.Int64("category_id", category.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: category %d", ErrNotFound, category.ID)
	}
	return nil
}

// GormArticleRepository is the GORM implementation of ArticleRepository
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GORM-based article repository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) Create(ctx context.Context, name string, price decimal.Decimal, categoryID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		zap.L().Warn("article references missing category", zap.Int64("category_id", categoryID))
		return 0, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
	}

	article := domain.Article{Name: name, Price: price, CategoryID: categoryID}
	if err := r.db.WithContext(ctx).Create(&article).Error; err != nil {
		zap.L().Error("failed to create article", zap.String("name", name), zap.Error(err))
		return 0, err
	}
	return article.ID, nil
}

func (r *GormArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := r.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: article %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *GormArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	query := r.db.WithContext(ctx).Model(&domain.Article{})
	if filter.CategoryID != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", *filter.CategoryID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, *filter.CategoryID)
		}
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		if strings.EqualFold(r.db.Name(), "postgres") {
			query = query.Where("name ILIKE ?", "%"+q+"%")
		} else {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var articles []domain.Article
	err := query.Order("id ASC").Find(&articles).Error
	return articles, err
}

func (r *GormArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", article.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, article.CategoryID)
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("id = ?", article.ID).
		Updates(map[string]interface{}{
			"name":        article.Name,
			"price":       article.Price,
			"category_id": article.CategoryID,
		})
	if res.Error != nil {
		zap.L().Error("failed to update article", zap.Int64("article_id", article.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: article %d", ErrNotFound, article.ID)
	}
	return nil
}

func (r *GormArticleRepository) Delete(ctx context.Context, article *domain.Article) error {
	res := r.db.WithContext(ctx).Delete(&domain.Article{}, article.ID)
	if res.Error != nil {
		zap.L().Error("failed to delete article", zap.Int64("article_id", article.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: article %d", ErrNotFound, article.ID)
	}
	return nil
}
