package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/currency"
	"github.com/gildedcart/shop/internal/service/models/geo"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/orderitem"
	"github.com/gildedcart/shop/internal/service/models/userprofile"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// assemble builds the order aggregate inside a single transaction: the
// order row, its line items and, for authenticated users, the display name
// update and shipping-default upsert. Any failure rolls everything back;
// partial orders are never observable.
func (s *CheckoutService) assemble(
	ctx context.Context,
	payload checkout.Payload,
	method order.PaymentMethod,
	reference string,
) (*order.Order, error) {
	state, city, err := s.resolveGeography(ctx, payload.State, payload.City)
	if err != nil {
		return nil, err
	}

	discountID, err := s.resolveDiscount(ctx, payload.DiscountCode)
	if err != nil {
		return nil, err
	}

	// Payment is verified before assemble runs on the gateway path, so the
	// order is born paid; manual orders await out-of-band confirmation.
	status := order.StatusPending
	if method == order.PaymentMethodPaystack {
		status = order.StatusPaid
	}

	now := timeNow()

	o := order.Order{
		UserID:         payload.UserID,
		DiscountID:     discountID,
		Reference:      reference,
		Name:           payload.FullName(),
		Email:          payload.Email,
		Phone:          payload.Phone,
		Address:        payload.FullAddress(),
		PostalCode:     payload.PostalCode,
		PaymentMethod:  method,
		DeliveryMethod: payload.DeliveryMethod,
		SubtotalKobo:   payload.SubtotalKobo,
		TotalKobo:      payload.TotalKobo,
		Currency:       currency.CurrencyNGN,
		Status:         status,
		OrderNote:      payload.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if state != nil {
		o.StateID = &state.ID
	}
	if city != nil {
		o.CityID = &city.ID
	}

	for _, line := range payload.CartItems {
		o.OrderItems = append(o.OrderItems, orderitem.OrderItem{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			UnitPriceKobo: line.PriceKobo,
			PriceCurrency: currency.CurrencyNGN,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order payload: %w", err)
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	created, err := s.persist(ctx, work, o, payload)
	if err != nil {
		if rbErr := work.Rollback(ctx); rbErr != nil && !errors.Is(err, order.ErrDuplicateReference) {
			return nil, fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return created, nil
}

func (s *CheckoutService) persist(
	ctx context.Context,
	work unitOfWork,
	o order.Order,
	payload checkout.Payload,
) (*order.Order, error) {
	items := o.OrderItems
	o.OrderItems = nil

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}

	inserted, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}
	created.OrderItems = inserted

	if payload.UserID != nil {
		if err := work.UserRepository().UpdateName(ctx, *payload.UserID, payload.FullName()); err != nil {
			return nil, fmt.Errorf("failed to update user name: %w", err)
		}

		if err := work.UserProfileRepository().Upsert(ctx, userprofile.UserProfile{
			UserID:     *payload.UserID,
			Phone:      payload.Phone,
			StateID:    created.StateID,
			CityID:     created.CityID,
			Address:    created.Address,
			PostalCode: payload.PostalCode,
		}); err != nil {
			return nil, fmt.Errorf("failed to upsert user profile: %w", err)
		}
	}

	return created, nil
}

// resolveGeography maps the submitted free-text state and city names to
// canonical records. No match blocks nothing: checkout proceeds with null
// references and fee lookups fall back to the default.
func (s *CheckoutService) resolveGeography(
	ctx context.Context,
	stateName, cityName string,
) (*geo.State, *geo.City, error) {
	state, err := s.geoRepo.FindStateByName(ctx, stateName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve state: %w", err)
	}
	if state == nil {
		return nil, nil, nil
	}

	city, err := s.geoRepo.FindCityByName(ctx, state.ID, cityName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve city: %w", err)
	}

	return state, city, nil
}

// resolveDiscount links a still-active discount code for bookkeeping. The
// total arrives pre-computed, so an expired or unknown code simply leaves
// the order without a discount reference.
func (s *CheckoutService) resolveDiscount(ctx context.Context, code string) (*int64, error) {
	if code == "" {
		return nil, nil
	}

	d, err := s.discountRepo.FindActiveByCode(ctx, code, timeNow())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve discount code: %w", err)
	}
	if d == nil {
		return nil, nil
	}

	return &d.ID, nil
}
