package iuser

import "context"

// PostgresRepository is an interface for the users postgres repository.
// Only the fields the checkout flow touches are exposed.
type PostgresRepository interface {
	UpdateName(ctx context.Context, userID int64, name string) error
}
