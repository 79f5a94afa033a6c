package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gildedcart/shop/internal/service/models/orderitem"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPaid, StatusCompleted, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusCompleted, StatusPaid, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("paid")
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderValidate(t *testing.T) {
	o := Order{
		SubtotalKobo: 1250000,
		OrderItems: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPriceKobo: 500000},
			{ProductID: 2, Quantity: 1, UnitPriceKobo: 250000},
		},
	}
	assert.NoError(t, o.Validate())

	o.SubtotalKobo = 100
	assert.Error(t, o.Validate())

	o = Order{SubtotalKobo: 0}
	assert.Error(t, o.Validate(), "orders need at least one line item")
}
