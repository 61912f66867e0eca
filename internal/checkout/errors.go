package checkout

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced cart, article or cart item
	// does not exist (anymore).
	ErrNotFound = errors.New("checkout: not found")

	// ErrDuplicateItem is returned when a cart item insert hits the
	// (article_id, cart_id) uniqueness constraint. The workflow avoids this
	// by merging in its mirror first; the store still guards the invariant.
	ErrDuplicateItem = errors.New("checkout: cart item already exists for this article and cart")

	// ErrCartPaid is returned on attempts to modify a finalized cart.
	ErrCartPaid = errors.New("checkout: cart is already paid")

	// ErrCartNotPaid is returned when deriving a receipt from an unpaid cart.
	ErrCartNotPaid = errors.New("checkout: cart is not paid")

	// ErrNoActiveCart is returned by Checkout when no cart has been started.
	ErrNoActiveCart = errors.New("checkout: no active cart")

	// ErrEmptyCart is returned by Checkout when the cart has no items.
	ErrEmptyCart = errors.New("checkout: cart has no items")
)

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM translates these to ErrDuplicatedKey when the dialector supports it;
// the string checks cover drivers that do not.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
