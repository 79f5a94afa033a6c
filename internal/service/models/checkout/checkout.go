package checkout

import (
	"time"

	"github.com/gildedcart/shop/internal/service/models/order"
)

// CartLine is one submitted cart entry. PriceKobo is the unit price the
// client checked out with; the assembler snapshots it onto the line item.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	PriceKobo int64 `json:"price_kobo"`
}

// Payload is a fully validated checkout submission. Amounts arrive
// pre-computed from the calling context; the assembler records them, it
// does not reprice.
type Payload struct {
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	Address         string               `json:"address"`
	AddressLine2    string               `json:"address_line_2,omitempty"`
	City            string               `json:"city"`
	State           string               `json:"state"`
	PostalCode      string               `json:"postal_code"`
	DeliveryMethod  order.DeliveryMethod `json:"delivery_method"`
	ShippingFeeKobo int64                `json:"shipping_fee_kobo"`
	DiscountCode    string               `json:"discount_code,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	CartItems       []CartLine           `json:"cart_items"`
	SubtotalKobo    int64                `json:"subtotal_kobo"`
	TotalKobo       int64                `json:"total_kobo"`
	UserID          *int64               `json:"user_id,omitempty"`
}

// FullName joins the submitted name parts the way the contact snapshot
// stores them.
func (p *Payload) FullName() string {
	return p.FirstName + " " + p.LastName
}

// FullAddress concatenates the primary and secondary address lines.
func (p *Payload) FullAddress() string {
	if p.AddressLine2 == "" {
		return p.Address
	}
	return p.Address + ", " + p.AddressLine2
}

// PendingCheckout preserves the exact purchase intent across the gateway
// redirect, keyed by gateway reference. Written at initiation, read back at
// verification.
type PendingCheckout struct {
	Reference string    `json:"reference"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}
