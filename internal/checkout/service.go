package checkout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openkasse/cashierd/internal/catalog"
	"github.com/openkasse/cashierd/internal/domain"
)

// session is the Building state of the workflow: the open cart plus the
// in-memory mirror of its line items. Items cannot exist without a cart.
type session struct {
	cart  domain.Cart
	items []domain.CartItem
}

// Service drives a single checkout transaction. It owns one in-progress
// cart at a time and keeps an in-memory mirror of the cart's line items in
// sync with the store on every mutation; nothing else writes cart items.
//
// The service is designed for one operator on one terminal. It is not safe
// for concurrent callers without external serialization.
type Service struct {
	articles  catalog.ArticleRepository
	carts     CartRepository
	cartItems CartItemRepository

	cur *session // nil while idle
}

// NewService creates a new checkout workflow service
func NewService(articles catalog.ArticleRepository, carts CartRepository, cartItems CartItemRepository) *Service {
	return &Service{articles: articles, carts: carts, cartItems: cartItems}
}

func (s *Service) startSession(ctx context.Context) (*session, error) {
	id, err := s.carts.Create(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session{cart: *cart}, nil
}

// Reset abandons the current cart and eagerly starts a new empty one.
// Used for explicit abort and after a finished checkout.
func (s *Service) Reset(ctx context.Context) error {
	cur, err := s.startSession(ctx)
	if err != nil {
		return err
	}
	s.cur = cur
	return nil
}

// SearchArticles matches catalog articles by case-insensitive substring on
// name. It does not touch the workflow state.
func (s *Service) SearchArticles(ctx context.Context, text string) ([]domain.Article, error) {
	return s.articles.List(ctx, catalog.ArticleFilter{Search: text})
}

// AddArticle puts quantity units of an article into the current cart,
// creating the cart lazily. Re-adding an article already in the cart merges
// into the existing line item by incrementing its quantity; the store's
// uniqueness constraint on (article, cart) is never hit on this path.
func (s *Service) AddArticle(ctx context.Context, article *domain.Article, quantity int) error {
	if s.cur == nil {
		cur, err := s.startSession(ctx)
		if err != nil {
			return err
		}
		s.cur = cur
	}

	for i := range s.cur.items {
		item := &s.cur.items[i]
		if item.ArticleID != article.ID {
			continue
		}
		item.Quantity += quantity
		if err := s.cartItems.Update(ctx, item); err != nil {
			// the add did not happen; undo the in-memory increment
			item.Quantity -= quantity
			return err
		}
		return nil
	}

	id, err := s.cartItems.Create(ctx, &s.cur.cart, article, quantity)
	if err != nil {
		return err
	}
	created, err := s.cartItems.GetByID(ctx, id)
	if err != nil {
		// never append a row we could not read back; the mirror must not
		// claim more than the store holds
		zap.L().Error("created cart item could not be re-fetched",
			zap.Int64("cart_item_id", id), zap.Error(err))
		return err
	}
	s.cur.items = append(s.cur.items, *created)
	return nil
}

// RemoveArticle deletes one line item of the current cart. The mirror is
// only touched after the store confirms the deletion.
func (s *Service) RemoveArticle(ctx context.Context, cartItemID int64) error {
	if s.cur == nil {
		return ErrNoActiveCart
	}
	item, err := s.cartItems.GetByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if item.CartID != s.cur.cart.ID {
		return fmt.Errorf("%w: cart item %d is not in the current cart", ErrNotFound, cartItemID)
	}
	if err := s.cartItems.Delete(ctx, item); err != nil {
		return err
	}
	for i := range s.cur.items {
		if s.cur.items[i].ID == item.ID {
			s.cur.items = append(s.cur.items[:i], s.cur.items[i+1:]...)
			break
		}
	}
	return nil
}

// CartItems returns the current cart's line items. It deliberately re-reads
// from the store rather than returning the mirror, so callers always see
// exactly what is persisted.
func (s *Service) CartItems(ctx context.Context) ([]domain.CartItem, error) {
	if s.cur == nil {
		return []domain.CartItem{}, nil
	}
	return s.cartItems.ListByCart(ctx, s.cur.cart.ID)
}

// Checkout finalizes the current cart: marks it paid, persists the flag and
// builds the receipt from the mirror in order. On success the workflow
// returns to idle; the next AddArticle starts a fresh cart. On a failed
// persist the cart stays open and unpaid so checkout can be retried.
func (s *Service) Checkout(ctx context.Context) (*domain.Receipt, error) {
	if s.cur == nil {
		return nil, ErrNoActiveCart
	}
	if len(s.cur.items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	s.cur.cart.Paid = true
	s.cur.cart.PaidAt = &now
	if err := s.carts.Update(ctx, &s.cur.cart); err != nil {
		s.cur.cart.Paid = false
		s.cur.cart.PaidAt = nil
		return nil, err
	}

	items := make([]domain.ReceiptItem, 0, len(s.cur.items))
	for _, item := range s.cur.items {
		items = append(items, domain.ReceiptItem{
			ArticleName: item.ArticleName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	zap.L().Info("cart finalized",
		zap.Int64("cart_id", s.cur.cart.ID),
		zap.Int("items", len(items)))

	s.cur = nil
	return &domain.Receipt{PaidAt: now, Items: items}, nil
}
