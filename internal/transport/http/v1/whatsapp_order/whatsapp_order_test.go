package whatsapporder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

type fakeService struct {
	gotPayload checkout.Payload
	order      *order.Order
	err        error
}

func (f *fakeService) CreateWhatsAppOrder(_ context.Context, payload checkout.Payload) (*order.Order, error) {
	f.gotPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

const validBody = `{
	"first_name": "Ada",
	"last_name": "Obi",
	"email": "ada@example.com",
	"phone": "+2348012345678",
	"address": "12 Marina Rd",
	"city": "Ikeja",
	"state": "Lagos",
	"postal_code": "100001",
	"delivery_method": "dispatch",
	"cart_items": [{"product_id": 5, "quantity": 2, "price": 500}],
	"subtotal": 1000,
	"total": 1000
}`

func TestCreateWhatsAppOrderRespondsWithIdAndReference(t *testing.T) {
	svc := &fakeService{order: &order.Order{
		ID:        42,
		Reference: "WA-ABC123XYZ0",
		Status:    order.StatusPending,
		TotalKobo: 100000,
	}}

	r := httptest.NewRequest("POST", "/api/checkout/whatsapp", strings.NewReader(validBody))
	w := httptest.NewRecorder()

	CreateWhatsAppOrder(w, r, svc, dto.NewValidator())

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.WhatsAppOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "WA-ABC123XYZ0", resp.Reference)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1000.0, resp.Total)
}

func TestCreateWhatsAppOrderRejectsInvalidBody(t *testing.T) {
	svc := &fakeService{}

	r := httptest.NewRequest("POST", "/api/checkout/whatsapp", strings.NewReader(`{"email": "ada@example.com"}`))
	w := httptest.NewRecorder()

	CreateWhatsAppOrder(w, r, svc, dto.NewValidator())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateWhatsAppOrderServiceFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("db down")}

	r := httptest.NewRequest("POST", "/api/checkout/whatsapp", strings.NewReader(validBody))
	w := httptest.NewRecorder()

	CreateWhatsAppOrder(w, r, svc, dto.NewValidator())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
