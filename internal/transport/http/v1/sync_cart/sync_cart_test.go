package synccart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

type fakeService struct {
	gotUserID int64
	gotToken  string
	gotLines  []cart.SyncLine
}

func (f *fakeService) Sync(_ context.Context, userID int64, syncToken string, lines []cart.SyncLine) error {
	f.gotUserID = userID
	f.gotToken = syncToken
	f.gotLines = lines
	return nil
}

const body = `{
	"sync_token": "5c0f9a3e-8f7e-4f4f-9a39-1d2b3c4d5e6f",
	"items": [{"product_id": 100, "quantity": 3}]
}`

func TestSyncCartRequiresAuth(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/sync", strings.NewReader(body))
	w := httptest.NewRecorder()

	SyncCart(w, r, &fakeService{}, dto.NewValidator())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncCartMergesForUser(t *testing.T) {
	svc := &fakeService{}
	r := httptest.NewRequest("POST", "/api/cart/sync", strings.NewReader(body))
	r.Header.Set("X-User-Id", "42")
	w := httptest.NewRecorder()

	SyncCart(w, r, svc, dto.NewValidator())

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(42), svc.gotUserID)
	assert.Equal(t, "5c0f9a3e-8f7e-4f4f-9a39-1d2b3c4d5e6f", svc.gotToken)
	require.Len(t, svc.gotLines, 1)
	assert.Equal(t, 3, svc.gotLines[0].Quantity)
}

func TestSyncCartRejectsBadToken(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/cart/sync", strings.NewReader(`{
		"sync_token": "nope",
		"items": [{"product_id": 100, "quantity": 3}]
	}`))
	r.Header.Set("X-User-Id", "42")
	w := httptest.NewRecorder()

	SyncCart(w, r, &fakeService{}, dto.NewValidator())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
