package ipendingcheckout

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/checkout"
)

// PostgresRepository is an interface for the pending checkout postgres
// repository. FindByReference returns (nil, nil) when no intent record
// exists for the reference.
type PostgresRepository interface {
	Insert(ctx context.Context, pc checkout.PendingCheckout) error
	FindByReference(ctx context.Context, reference string) (*checkout.PendingCheckout, error)
	DeleteByReference(ctx context.Context, reference string) error
}
