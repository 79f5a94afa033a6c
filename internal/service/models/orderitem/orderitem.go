package orderitem

import (
	"time"

	"github.com/gildedcart/shop/internal/service/models/currency"
)

// OrderItem represents a line within an order. UnitPriceKobo is a snapshot
// of the product price at purchase time so historical totals survive
// catalog price changes.
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	ProductID     int64             `json:"productId"`
	Quantity      int               `json:"quantity"`
	UnitPriceKobo int64             `json:"unitPriceKobo"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
