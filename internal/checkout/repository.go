package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openkasse/cashierd/internal/domain"
)

// CartRepository handles database operations for carts
type CartRepository interface {
	// Create inserts a new unpaid cart with no items and returns its id
	Create(ctx context.Context) (int64, error)

	// GetByID retrieves cart header fields; items are loaded separately
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)

	// List retrieves all carts in creation order
	List(ctx context.Context) ([]domain.Cart, error)

	// Update persists paid/paid_at; exactly one row must be affected
	Update(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart; its items cascade at the storage level
	Delete(ctx context.Context, cart *domain.Cart) error
}

// CartItemRepository handles database operations for cart line items
type CartItemRepository interface {
	// Create inserts a line item after re-validating that cart and article
	// exist, snapshotting the article's current price and name
	Create(ctx context.Context, cart *domain.Cart, article *domain.Article, quantity int) (int64, error)

	// GetByID retrieves a cart item by ID
	GetByID(ctx context.Context, id int64) (*domain.CartItem, error)

	// List retrieves all cart items in insertion order
	List(ctx context.Context) ([]domain.CartItem, error)

	// ListByCart retrieves the items of one cart in insertion order;
	// a missing cart yields an empty result, not an error
	ListByCart(ctx context.Context, cartID int64) ([]domain.CartItem, error)

	// Update persists quantity and unit price only; the article/cart
	// linkage is immutable after creation
	Update(ctx context.Context, item *domain.CartItem) error

	// Delete removes the line item; exactly one row must be affected
	Delete(ctx context.Context, item *domain.CartItem) error
}

// GormCartRepository is the GORM implementation of CartRepository
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM-based cart repository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context) (int64, error) {
	cart := domain.Cart{Paid: false}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		zap.L().Error("failed to create cart", zap.Error(err))
		return 0, err
	}
	return cart.ID, nil
}

func (r *GormCartRepository) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).First(&cart, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	var carts []domain.Cart
	err := r.db.WithContext(ctx).Order("id ASC").Find(&carts).Error
	return carts, err
}

func (r *GormCartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	query := r.db.WithContext(ctx).Model(&domain.Cart{}).Where("id = ?", cart.ID)
	if !cart.Paid {
		// a finalized cart never transitions back to unpaid
		query = query.Where("paid = ?", false)
	}
	res := query.Updates(map[string]interface{}{
		"paid":    cart.Paid,
		"paid_at": cart.PaidAt,
	})
	if res.Error != nil {
		zap.L().Error("failed to update cart", zap.Int64("cart_id", cart.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: cart %d", ErrNotFound, cart.ID)
	}
	return nil
}

func (r *GormCartRepository) Delete(ctx context.Context, cart *domain.Cart) error {
	res := r.db.WithContext(ctx).Delete(&domain.Cart{}, cart.ID)
	if res.Error != nil {
		zap.L().Error("failed to delete cart", zap.Int64("cart_id", cart.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: cart %d", ErrNotFound, cart.ID)
	}
	return nil
}

// GormCartItemRepository is the GORM implementation of CartItemRepository
type GormCartItemRepository struct {
	db *gorm.DB
}

// NewGormCartItemRepository creates a new GORM-based cart item repository
func NewGormCartItemRepository(db *gorm.DB) *GormCartItemRepository {
	return &GormCartItemRepository{db: db}
}

func (r *GormCartItemRepository) Create(ctx context.Context, cart *domain.Cart, article *domain.Article, quantity int) (int64, error) {
	// existence is re-checked at call time, not taken from the caller
	var current domain.Cart
	err := r.db.WithContext(ctx).First(&current, cart.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("cart item references missing cart", zap.Int64("cart_id", cart.ID))
		return 0, fmt.Errorf("%w: cart %d", ErrNotFound, cart.ID)
	}
	if err != nil {
		return 0, err
	}
	if current.Paid {
		return 0, fmt.Errorf("%w: cart %d", ErrCartPaid, cart.ID)
	}

	var fresh domain.Article
	err = r.db.WithContext(ctx).First(&fresh, article.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("cart item references missing article", zap.Int64("article_id", article.ID))
		return 0, fmt.Errorf("%w: article %d", ErrNotFound, article.ID)
	}
	if err != nil {
		return 0, err
	}

	item := domain.CartItem{
		ArticleID:   fresh.ID,
		CartID:      current.ID,
		Quantity:    quantity,
		UnitPrice:   fresh.Price,
		ArticleName: fresh.Name,
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isDuplicateKey(err) {
			zap.L().Warn("cart item already exists",
				zap.Int64("cart_id", current.ID),
				zap.Int64("article_id", fresh.ID))
			return 0, fmt.Errorf("%w: article %d in cart %d", ErrDuplicateItem, fresh.ID, current.ID)
		}
		zap.L().Error("failed to create cart item", zap.Error(err))
		return 0, err
	}
	return item.ID, nil
}

func (r *GormCartItemRepository) GetByID(ctx context.Context, id int64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartItemRepository) List(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormCartItemRepository) ListByCart(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Cart{}).Where("id = ?", cartID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		zap.L().Warn("listing items of missing cart", zap.Int64("cart_id", cartID))
		return []domain.CartItem{}, nil
	}

	var items []domain.CartItem
	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormCartItemRepository) Update(ctx context.Context, item *domain.CartItem) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		})
	if res.Error != nil {
		zap.L().Error("failed to update cart item", zap.Int64("cart_item_id", item.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: cart item %d", ErrNotFound, item.ID)
	}
	return nil
}

func (r *GormCartItemRepository) Delete(ctx context.Context, item *domain.CartItem) error {
	res := r.db.WithContext(ctx).Delete(&domain.CartItem{}, item.ID)
	if res.Error != nil {
		zap.L().Error("failed to delete cart item", zap.Int64("cart_item_id", item.ID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: cart item %d", ErrNotFound, item.ID)
	}
	return nil
}
