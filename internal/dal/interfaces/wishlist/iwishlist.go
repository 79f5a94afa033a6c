package iwishlist

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/wishlist"
)

// PostgresRepository is an interface for the wishlist postgres repository.
type PostgresRepository interface {
	// Add saves the product on the user's wishlist. Returns false when the
	// entry already existed, so repeated adds reconcile to a set union.
	Add(ctx context.Context, userID, productID int64) (bool, error)
	// Remove drops the product from the user's wishlist. Returns false
	// when there was nothing to remove.
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]wishlist.Item, error)
	// FilterOwned returns the subset of productIDs present on the user's
	// wishlist.
	FilterOwned(ctx context.Context, userID int64, productIDs []int64) ([]int64, error)
}
