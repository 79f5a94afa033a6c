package dispatchsvc

import (
	"context"
	"fmt"

	igeo "github.com/gildedcart/shop/internal/dal/interfaces/geo"
	"github.com/spf13/viper"
)

// DispatchService quotes shipping fees by destination. Lookup order:
// city-level override, state-level fallback, configured default sentinel.
type DispatchService struct {
	geoRepo        igeo.PostgresRepository
	defaultFeeKobo int64
}

// option is a function that configures the DispatchService.
type option func(*DispatchService)

// MustNewDispatchService creates a new DispatchService.
func MustNewDispatchService(opts ...option) *DispatchService {
	s := &DispatchService{
		defaultFeeKobo: viper.GetInt64("dispatch.default_fee_kobo"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithGeoRepository(r igeo.PostgresRepository) option {
	return func(s *DispatchService) {
		s.geoRepo = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithDefaultFee(kobo int64) option {
	return func(s *DispatchService) {
		s.defaultFeeKobo = kobo
	}
}

// QuoteFee returns the dispatch fee for the free-text destination. A
// destination that resolves to no canonical state gets the default fee
// rather than an error, mirroring how checkout tolerates catalog gaps.
func (s *DispatchService) QuoteFee(ctx context.Context, stateName, cityName string) (int64, error) {
	state, err := s.geoRepo.FindStateByName(ctx, stateName)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve state: %w", err)
	}
	if state == nil {
		return s.defaultFeeKobo, nil
	}

	if cityName != "" {
		city, err := s.geoRepo.FindCityByName(ctx, state.ID, cityName)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve city: %w", err)
		}
		if city != nil {
			fee, err := s.geoRepo.FindCityFee(ctx, state.ID, city.ID)
			if err != nil {
				return 0, fmt.Errorf("failed to look up city fee: %w", err)
			}
			if fee != nil {
				return fee.AmountKobo, nil
			}
		}
	}

	fee, err := s.geoRepo.FindStateFee(ctx, state.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up state fee: %w", err)
	}
	if fee != nil {
		return fee.AmountKobo, nil
	}

	return s.defaultFeeKobo, nil
}
