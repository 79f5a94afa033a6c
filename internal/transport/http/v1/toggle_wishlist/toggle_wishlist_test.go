package togglewishlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

type fakeService struct {
	gotUserID    int64
	gotProductID int64
	inWishlist   bool
}

func (f *fakeService) Toggle(_ context.Context, userID, productID int64) (bool, error) {
	f.gotUserID = userID
	f.gotProductID = productID
	return f.inWishlist, nil
}

func TestToggleWishlistRequiresAuth(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/wishlist/toggle", strings.NewReader(`{"product_id": 100}`))
	w := httptest.NewRecorder()

	ToggleWishlist(w, r, &fakeService{}, dto.NewValidator())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleWishlistReportsState(t *testing.T) {
	svc := &fakeService{inWishlist: true}
	r := httptest.NewRequest("POST", "/api/wishlist/toggle", strings.NewReader(`{"product_id": 100}`))
	r.Header.Set("X-User-Id", "42")
	w := httptest.NewRecorder()

	ToggleWishlist(w, r, svc, dto.NewValidator())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), svc.gotUserID)
	assert.Equal(t, int64(100), svc.gotProductID)

	var resp dto.ToggleWishlistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.InWishlist)
}

func TestToggleWishlistRejectsMissingProduct(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/wishlist/toggle", strings.NewReader(`{}`))
	r.Header.Set("X-User-Id", "42")
	w := httptest.NewRecorder()

	ToggleWishlist(w, r, &fakeService{}, dto.NewValidator())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
