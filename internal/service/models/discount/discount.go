package discount

import "time"

// DiscountCode is create-once, read-many. A code is usable while
// now < ExpiresAt; there is no redemption flag, so multiple orders may
// reference the same code until it expires.
type DiscountCode struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	MinAmountKobo int64     `json:"minAmountKobo"`
	DiscountKobo  int64     `json:"discountKobo"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
}
