package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/gildedcart/shop/internal/service/models/currency"
	"github.com/gildedcart/shop/internal/service/models/orderitem"
)

// PaymentMethod tags how an order was paid for.
type PaymentMethod string

const (
	// PaymentMethodPaystack marks orders whose payment was captured by the
	// hosted gateway before the order was recorded.
	PaymentMethodPaystack PaymentMethod = "paystack"
	// PaymentMethodWhatsApp marks manually placed orders confirmed
	// out-of-band over chat.
	PaymentMethodWhatsApp PaymentMethod = "whatsapp"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodPaystack, PaymentMethodWhatsApp:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// DeliveryMethod tags how an order is fulfilled.
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDispatch DeliveryMethod = "dispatch"
)

var ErrInvalidDeliveryMethod = errors.New("invalid delivery method")

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliveryMethodPickup, DeliveryMethodDispatch:
		return DeliveryMethod(s), nil
	default:
		return "", ErrInvalidDeliveryMethod
	}
}

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// next. Forward-only pending -> paid -> completed; cancellation is allowed
// from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPaid || next == StatusCancelled
	case StatusPaid:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ErrInvalidTransition is returned when a status update violates the
// lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDuplicateReference is returned when an order with the same reference
// already exists. Callers treat it as "already processed".
var ErrDuplicateReference = errors.New("order reference already exists")

// Order is the order aggregate root. Monetary fields are immutable after
// creation; only Status transitions thereafter.
type Order struct {
	ID             int64                 `json:"id"`
	UserID         *int64                `json:"userId"`
	DiscountID     *int64                `json:"discountId"`
	Reference      string                `json:"reference"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	StateID        *int64                `json:"stateId"`
	CityID         *int64                `json:"cityId"`
	Address        string                `json:"address"`
	PostalCode     string                `json:"postalCode"`
	PaymentMethod  PaymentMethod         `json:"paymentMethod"`
	DeliveryMethod DeliveryMethod        `json:"deliveryMethod"`
	SubtotalKobo   int64                 `json:"subtotalKobo"`
	TotalKobo      int64                 `json:"totalKobo"`
	Currency       currency.Currency     `json:"currency"`
	Status         Status                `json:"status"`
	OrderNote      string                `json:"orderNote"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
	OrderItems     []orderitem.OrderItem `json:"orderItems"`
}

// ItemsSubtotalKobo is the sum of unit price times quantity over the line
// items.
func (o *Order) ItemsSubtotalKobo() int64 {
	var sum int64
	for _, item := range o.OrderItems {
		sum += item.UnitPriceKobo * int64(item.Quantity)
	}
	return sum
}

// Validate checks the creation-time invariants of the aggregate.
func (o *Order) Validate() error {
	if len(o.OrderItems) == 0 {
		return errors.New("order has no line items")
	}
	if got := o.ItemsSubtotalKobo(); got != o.SubtotalKobo {
		return fmt.Errorf("subtotal %d does not match line items sum %d", o.SubtotalKobo, got)
	}
	return nil
}
