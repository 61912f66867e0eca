package checkout

import (
	"context"
	"fmt"

	"github.com/openkasse/cashierd/internal/domain"
)

// HistoryService reads completed carts for the purchases view. It never
// mutates carts or items.
type HistoryService struct {
	carts     CartRepository
	cartItems CartItemRepository
}

// NewHistoryService creates a new purchase history service
func NewHistoryService(carts CartRepository, cartItems CartItemRepository) *HistoryService {
	return &HistoryService{carts: carts, cartItems: cartItems}
}

// Carts lists all carts in creation order, paid and unpaid.
func (s *HistoryService) Carts(ctx context.Context) ([]domain.Cart, error) {
	return s.carts.List(ctx)
}

// PaidCarts lists only finalized carts in creation order.
func (s *HistoryService) PaidCarts(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, err
	}
	paid := make([]domain.Cart, 0, len(carts))
	for _, cart := range carts {
		if cart.Paid {
			paid = append(paid, cart)
		}
	}
	return paid, nil
}

// CartItems lists the line items of one cart in insertion order.
func (s *HistoryService) CartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	if _, err := s.carts.GetByID(ctx, cartID); err != nil {
		return nil, err
	}
	return s.cartItems.ListByCart(ctx, cartID)
}

// Receipt derives the receipt of a finalized cart on demand from its
// persisted items. The items are not stored as a receipt anywhere.
func (s *HistoryService) Receipt(ctx context.Context, cartID int64) (*domain.Receipt, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.Paid || cart.PaidAt == nil {
		return nil, fmt.Errorf("%w: cart %d", ErrCartNotPaid, cartID)
	}

	items, err := s.cartItems.ListByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	receiptItems := make([]domain.ReceiptItem, 0, len(items))
	for _, item := range items {
		receiptItems = append(receiptItems, domain.ReceiptItem{
			ArticleName: item.ArticleName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return &domain.Receipt{PaidAt: *cart.PaidAt, Items: receiptItems}, nil
}
