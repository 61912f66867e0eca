package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article is a priced catalog entry belonging to exactly one category.
// Price is the live catalog value; cart items carry their own snapshot
// taken at add time, so editing it never changes past or open carts.
type Article struct {
	ID         int64           `json:"id,string" form:"id" gorm:"primaryKey;autoIncrement"`
	Name       string          `json:"name" form:"name" gorm:"size:200;not null;index"`
	Price      decimal.Decimal `json:"price" form:"price" gorm:"type:numeric;not null"`
	CategoryID int64           `json:"category_id,string" form:"category_id" gorm:"index;not null"`
	Items      []CartItem      `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Article) TableName() string {
	return "articles"
}
