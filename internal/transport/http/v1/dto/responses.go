package dto

import "time"

// InitiateCheckoutResponse carries the gateway redirect for the client.
type InitiateCheckoutResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// WhatsAppOrderResponse is returned after a manual order is recorded.
type WhatsAppOrderResponse struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
}

// CallbackResponse reports the reconciliation outcome of a gateway return.
type CallbackResponse struct {
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
}

// OrderItemResponse is one order line with its captured unit price.
type OrderItemResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse is the full order representation.
type OrderResponse struct {
	ID             int64               `json:"id"`
	Reference      string              `json:"reference"`
	Status         string              `json:"status"`
	PaymentMethod  string              `json:"payment_method"`
	DeliveryMethod string              `json:"delivery_method"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	PostalCode     string              `json:"postal_code"`
	Subtotal       float64             `json:"subtotal"`
	Total          float64             `json:"total"`
	Currency       string              `json:"currency"`
	Note           string              `json:"note,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// CartLineResponse is one server-side cart line.
type CartLineResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartResponse is the authenticated user's cart.
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
}

// WishlistItemResponse is one saved wishlist product.
type WishlistItemResponse struct {
	ProductID int64 `json:"product_id"`
}

// WishlistResponse is the authenticated user's wishlist.
type WishlistResponse struct {
	Items []WishlistItemResponse `json:"items"`
}

// ToggleWishlistResponse reports the product's wishlist state after a
// toggle.
type ToggleWishlistResponse struct {
	InWishlist bool `json:"inWishlist"`
}

// CheckWishlistResponse lists which queried products are saved.
type CheckWishlistResponse struct {
	WishlistItems []int64 `json:"wishlist_items"`
}

// DispatchFeeResponse is a delivery fee quote in naira.
type DispatchFeeResponse struct {
	Fee float64 `json:"fee"`
}

// ClaimOrdersResponse reports how many guest orders were attached.
type ClaimOrdersResponse struct {
	Claimed int64 `json:"claimed"`
}
