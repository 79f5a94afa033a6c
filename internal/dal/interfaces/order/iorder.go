package iorder

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/order"
)

// PostgresRepository is an interface for the order postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	FindByReference(ctx context.Context, reference string) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	// UpdateStatus moves an order from one status to another. Returns
	// (nil, nil) when the order is no longer in the from status.
	UpdateStatus(ctx context.Context, id int64, from, to order.Status) (*order.Order, error)
	ClaimByEmail(ctx context.Context, userID int64, email string) (int64, error)
}
