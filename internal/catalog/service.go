package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openkasse/cashierd/internal/domain"
)

// Service exposes the inventory operations used by the terminal: category
// and article management plus article lookup for the checkout screen.
type Service struct {
	categories CategoryRepository
	articles   ArticleRepository
}

// NewService creates a new catalog service
func NewService(categories CategoryRepository, articles ArticleRepository) *Service {
	return &Service{categories: categories, articles: articles}
}

func (s *Service) CreateCategory(ctx context.Context, name string) (int64, error) {
	return s.categories.Create(ctx, name)
}

// DeleteCategory removes a category and cascades its articles.
func (s *Service) DeleteCategory(ctx context.Context, categoryID int64) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	return s.categories.Delete(ctx, category)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateArticle(ctx context.Context, name string, price decimal.Decimal, categoryID int64) (int64, error) {
	return s.articles.Create(ctx, name, price, categoryID)
}

func (s *Service) DeleteArticle(ctx context.Context, articleID int64) error {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	return s.articles.Delete(ctx, article)
}

func (s *Service) Article(ctx context.Context, articleID int64) (*domain.Article, error) {
	return s.articles.GetByID(ctx, articleID)
}

// Articles lists articles, optionally scoped to one category.
func (s *Service) Articles(ctx context.Context, categoryID *int64) ([]domain.Article, error) {
	return s.articles.List(ctx, ArticleFilter{CategoryID: categoryID})
}

// SearchArticles matches articles by case-insensitive substring on name.
func (s *Service) SearchArticles(ctx context.Context, text string) ([]domain.Article, error) {
	return s.articles.List(ctx, ArticleFilter{Search: text})
}
