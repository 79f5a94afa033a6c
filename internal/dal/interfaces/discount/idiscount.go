package idiscount

import (
	"context"
	"time"

	"github.com/gildedcart/shop/internal/service/models/discount"
)

// PostgresRepository is an interface for the discount code postgres
// repository. FindActiveByCode returns (nil, nil) for expired or unknown
// codes.
type PostgresRepository interface {
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*discount.DiscountCode, error)
}
