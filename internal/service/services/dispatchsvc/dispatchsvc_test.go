package dispatchsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/geo"
)

type fakeGeoRepo struct {
	states    map[string]*geo.State
	cities    map[string]*geo.City
	cityFees  map[int64]*geo.DispatchFee
	stateFees map[int64]*geo.DispatchFee
}

func (f *fakeGeoRepo) FindStateByName(_ context.Context, name string) (*geo.State, error) {
	return f.states[name], nil
}

func (f *fakeGeoRepo) FindCityByName(_ context.Context, _ int64, name string) (*geo.City, error) {
	return f.cities[name], nil
}

func (f *fakeGeoRepo) FindCityFee(_ context.Context, _, cityID int64) (*geo.DispatchFee, error) {
	return f.cityFees[cityID], nil
}

func (f *fakeGeoRepo) FindStateFee(_ context.Context, stateID int64) (*geo.DispatchFee, error) {
	return f.stateFees[stateID], nil
}

func newService(repo *fakeGeoRepo) *DispatchService {
	return MustNewDispatchService(
		WithGeoRepository(repo),
		WithDefaultFee(250000),
	)
}

func TestQuoteFeeCityOverride(t *testing.T) {
	cityID := int64(10)
	repo := &fakeGeoRepo{
		states:   map[string]*geo.State{"Lagos": {ID: 1, Name: "Lagos"}},
		cities:   map[string]*geo.City{"Ikeja": {ID: cityID, StateID: 1, Name: "Ikeja"}},
		cityFees: map[int64]*geo.DispatchFee{cityID: {StateID: 1, CityID: &cityID, AmountKobo: 100000}},
		stateFees: map[int64]*geo.DispatchFee{
			1: {StateID: 1, AmountKobo: 180000},
		},
	}

	fee, err := newService(repo).QuoteFee(context.Background(), "Lagos", "Ikeja")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), fee)
}

func TestQuoteFeeStateFallback(t *testing.T) {
	repo := &fakeGeoRepo{
		states:    map[string]*geo.State{"Lagos": {ID: 1, Name: "Lagos"}},
		cities:    map[string]*geo.City{},
		cityFees:  map[int64]*geo.DispatchFee{},
		stateFees: map[int64]*geo.DispatchFee{1: {StateID: 1, AmountKobo: 180000}},
	}

	fee, err := newService(repo).QuoteFee(context.Background(), "Lagos", "Badagry")
	require.NoError(t, err)
	assert.Equal(t, int64(180000), fee)
}

func TestQuoteFeeUnknownStateUsesDefault(t *testing.T) {
	repo := &fakeGeoRepo{states: map[string]*geo.State{}}

	fee, err := newService(repo).QuoteFee(context.Background(), "Atlantis", "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, int64(250000), fee)
}

func TestQuoteFeeNoFeeRowsUsesDefault(t *testing.T) {
	repo := &fakeGeoRepo{
		states:    map[string]*geo.State{"Lagos": {ID: 1, Name: "Lagos"}},
		cities:    map[string]*geo.City{},
		cityFees:  map[int64]*geo.DispatchFee{},
		stateFees: map[int64]*geo.DispatchFee{},
	}

	fee, err := newService(repo).QuoteFee(context.Background(), "Lagos", "")
	require.NoError(t, err)
	assert.Equal(t, int64(250000), fee)
}
