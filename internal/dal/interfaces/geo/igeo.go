package igeo

import (
	"context"

	"github.com/gildedcart/shop/internal/service/models/geo"
)

// PostgresRepository is an interface for the geography postgres repository.
// Lookups return (nil, nil) when no row matches; absence is not an error.
type PostgresRepository interface {
	FindStateByName(ctx context.Context, name string) (*geo.State, error)
	FindCityByName(ctx context.Context, stateID int64, name string) (*geo.City, error)
	FindCityFee(ctx context.Context, stateID, cityID int64) (*geo.DispatchFee, error)
	FindStateFee(ctx context.Context, stateID int64) (*geo.DispatchFee, error)
}
