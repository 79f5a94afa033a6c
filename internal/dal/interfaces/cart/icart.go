package icart

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/cart"
)

// PostgresRepository is an interface for the server-side cart postgres
// repository.
type PostgresRepository interface {
	// RecordSync claims a sync token for a user. Returns false when the
	// token was already recorded, making a replayed merge a no-op.
	RecordSync(ctx context.Context, userID int64, syncToken string) (bool, error)
	// AddQuantity adds qty to the user's line for the product, creating
	// the line when absent.
	AddQuantity(ctx context.Context, userID, productID int64, qty int) error
	ListByUser(ctx context.Context, userID int64) ([]cart.Line, error)
	ClearUser(ctx context.Context, userID int64) error
}
