package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Checkout module related models

// Cart is one customer transaction. It is created unpaid and empty,
// accumulates cart items while unpaid, and is finalized exactly once:
// Paid flips to true and PaidAt is set, after which the cart is immutable.
type Cart struct {
	ID        int64      `json:"id,string" form:"id" gorm:"primaryKey;autoIncrement"`
	Paid      bool       `json:"paid" form:"paid" gorm:"not null;default:false"`
	PaidAt    *time.Time `json:"paid_at"`
	Items     []CartItem `json:"-" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one article's quantity entry within a cart. UnitPrice and
// ArticleName are snapshots of the article at the moment the item was first
// added; renaming or repricing the article later must not affect receipts.
// At most one row exists per (article_id, cart_id) pair.
type CartItem struct {
	ID          int64           `json:"id,string" form:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID   int64           `json:"article_id,string" form:"article_id" gorm:"not null;uniqueIndex:idx_article_cart"`
	CartID      int64           `json:"cart_id,string" form:"cart_id" gorm:"not null;uniqueIndex:idx_article_cart"`
	Quantity    int             `json:"quantity" form:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric;not null"`
	ArticleName string          `json:"article_name" gorm:"size:200;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}
