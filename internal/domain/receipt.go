package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the immutable summary of a finalized cart. It is never
// persisted; it is derived from a paid cart and its items on demand.
type Receipt struct {
	PaidAt time.Time     `json:"paid_at"`
	Items  []ReceiptItem `json:"items"`
}

// Total sums the line totals of all receipt items.
func (r Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ReceiptItem is one line of a receipt, carrying the snapshotted article
// name and unit price from the cart item it was built from.
type ReceiptItem struct {
	ArticleName string          `json:"article_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times the snapshotted unit price.
func (i ReceiptItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
