package iuserprofile

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/userprofile"
)

// PostgresRepository is an interface for the user profile postgres
// repository.
type PostgresRepository interface {
	Upsert(ctx context.Context, profile userprofile.UserProfile) error
	FindByUserID(ctx context.Context, userID int64) (*userprofile.UserProfile, error)
}
