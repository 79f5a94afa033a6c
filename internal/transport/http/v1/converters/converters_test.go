package converters

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

func TestUserIDFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/cart", nil)
	assert.Nil(t, UserIDFromRequest(r), "no header means guest")

	r.Header.Set("X-User-Id", "42")
	id := UserIDFromRequest(r)
	require.NotNil(t, id)
	assert.Equal(t, int64(42), *id)

	r.Header.Set("X-User-Id", "abc")
	assert.Nil(t, UserIDFromRequest(r))

	r.Header.Set("X-User-Id", "-1")
	assert.Nil(t, UserIDFromRequest(r))
}

func TestCheckoutPayloadFromRequestConvertsToKobo(t *testing.T) {
	req := dto.CheckoutRequest{
		FirstName:      "Ada",
		LastName:       "Obi",
		Email:          "ada@example.com",
		DeliveryMethod: "dispatch",
		ShippingFee:    1500,
		CartItems: []dto.CartItemRequest{
			{ProductID: 1, Quantity: 2, Price: 5000},
		},
		Subtotal: 10000,
		Total:    11500,
	}

	userID := int64(42)
	payload := CheckoutPayloadFromRequest(req, &userID)

	assert.Equal(t, int64(1000000), payload.SubtotalKobo)
	assert.Equal(t, int64(1150000), payload.TotalKobo)
	assert.Equal(t, int64(150000), payload.ShippingFeeKobo)
	assert.Equal(t, order.DeliveryMethodDispatch, payload.DeliveryMethod)
	require.Len(t, payload.CartItems, 1)
	assert.Equal(t, int64(500000), payload.CartItems[0].PriceKobo)
	require.NotNil(t, payload.UserID)
	assert.Equal(t, userID, *payload.UserID)
}

func TestOrderToResponseConvertsToNaira(t *testing.T) {
	o := order.Order{
		ID:            1,
		Reference:     "WA-AAAAAAAAAA",
		Status:        order.StatusPending,
		PaymentMethod: order.PaymentMethodWhatsApp,
		SubtotalKobo:  1000000,
		TotalKobo:     1150000,
	}

	resp := OrderToResponse(o)

	assert.Equal(t, 10000.0, resp.Subtotal)
	assert.Equal(t, 11500.0, resp.Total)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "whatsapp", resp.PaymentMethod)
}
