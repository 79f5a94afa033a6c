package dto

import (
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
)

// CartItemRequest is one submitted cart line. Price is the decimal unit
// price in naira.
type CartItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required,gte=0"`
}

// CheckoutRequest is the shared payload of the gateway-initiate and
// manual-order operations. Amounts are decimal naira; conversion to kobo
// happens at the transport boundary.
type CheckoutRequest struct {
	FirstName      string            `json:"first_name" validate:"required"`
	LastName       string            `json:"last_name" validate:"required"`
	Email          string            `json:"email" validate:"required,email"`
	Phone          string            `json:"phone" validate:"required,max=20"`
	Address        string            `json:"address" validate:"required"`
	AddressLine2   string            `json:"address_line_2"`
	City           string            `json:"city" validate:"required"`
	State          string            `json:"state" validate:"required"`
	PostalCode     string            `json:"postal_code" validate:"required"`
	DeliveryMethod string            `json:"delivery_method" validate:"required,oneof=pickup dispatch"`
	ShippingFee    float64           `json:"shipping_fee" validate:"gte=0"`
	DiscountCode   string            `json:"discount_code"`
	Notes          string            `json:"notes"`
	CartItems      []CartItemRequest `json:"cart_items" validate:"required,min=1,dive"`
	Subtotal       float64           `json:"subtotal" validate:"required,gt=0"`
	Total          float64           `json:"total" validate:"required,gt=0"`
}

// SyncCartRequest merges a guest cart into the server cart. SyncToken is a
// client-minted UUID guarding against double merges.
type SyncCartRequest struct {
	SyncToken string         `json:"sync_token" validate:"required,uuid4"`
	Items     []SyncCartItem `json:"items" validate:"required,min=1,dive"`
}

// SyncCartItem is one guest cart line.
type SyncCartItem struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// ToggleWishlistRequest flips one product's presence on the wishlist.
type ToggleWishlistRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// SyncWishlistRequest merges guest wishlist product ids into the server
// wishlist. The union makes replays a no-op without a token.
type SyncWishlistRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

// CheckWishlistRequest asks which of the product ids are saved.
type CheckWishlistRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

// ClaimOrdersRequest attaches guest orders matching an email to a user.
type ClaimOrdersRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateOrderStatusRequest transitions an order's lifecycle status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid completed cancelled"`
}

// NewValidator returns a configured validator with the struct-level
// checkout rule registered.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})

	return v
}

// checkoutStructValidation verifies the submitted subtotal equals the sum
// of quantity times price over the cart items, compared in kobo to avoid
// float rounding issues.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	var sumKobo int64
	for _, item := range req.CartItems {
		sumKobo += int64(item.Quantity) * NairaToKobo(item.Price)
	}

	if sumKobo != NairaToKobo(req.Subtotal) {
		sl.ReportError(req.Subtotal, "subtotal", "Subtotal", "subtotal_match_items", "")
	}
}

// NairaToKobo converts a decimal naira amount to kobo.
func NairaToKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}

// KoboToNaira converts kobo back to a decimal naira amount.
func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / 100
}
