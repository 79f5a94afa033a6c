package cartsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/cart"
)

type fakeCartRepo struct {
	lines  map[int64]map[int64]int
	synced map[string]bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		lines:  make(map[int64]map[int64]int),
		synced: make(map[string]bool),
	}
}

func (f *fakeCartRepo) RecordSync(_ context.Context, _ int64, syncToken string) (bool, error) {
	if f.synced[syncToken] {
		return false, nil
	}
	f.synced[syncToken] = true
	return true, nil
}

func (f *fakeCartRepo) AddQuantity(_ context.Context, userID, productID int64, qty int) error {
	if f.lines[userID] == nil {
		f.lines[userID] = make(map[int64]int)
	}
	f.lines[userID][productID] += qty
	return nil
}

func (f *fakeCartRepo) ListByUser(_ context.Context, userID int64) ([]cart.Line, error) {
	var out []cart.Line
	for productID, qty := range f.lines[userID] {
		out = append(out, cart.Line{UserID: userID, ProductID: productID, Quantity: qty})
	}
	return out, nil
}

func (f *fakeCartRepo) ClearUser(_ context.Context, userID int64) error {
	delete(f.lines, userID)
	return nil
}

func TestSyncMergesQuantities(t *testing.T) {
	repo := newFakeCartRepo()
	repo.lines[1] = map[int64]int{100: 2}

	svc := MustNewCartService(WithCartRepository(repo))

	err := svc.Sync(context.Background(), 1, "5c0f9a3e-8f7e-4f4f-9a39-1d2b3c4d5e6f", []cart.SyncLine{
		{ProductID: 100, Quantity: 3},
		{ProductID: 200, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, repo.lines[1][100], "duplicate products sum quantities")
	assert.Equal(t, 1, repo.lines[1][200])
}

func TestSyncReplayedTokenIsNoOp(t *testing.T) {
	repo := newFakeCartRepo()
	svc := MustNewCartService(WithCartRepository(repo))

	token := "5c0f9a3e-8f7e-4f4f-9a39-1d2b3c4d5e6f"
	lines := []cart.SyncLine{{ProductID: 100, Quantity: 3}}

	require.NoError(t, svc.Sync(context.Background(), 1, token, lines))
	require.NoError(t, svc.Sync(context.Background(), 1, token, lines))

	assert.Equal(t, 3, repo.lines[1][100], "replay must not double quantities")
}

func TestSyncTokenIsCaseInsensitive(t *testing.T) {
	repo := newFakeCartRepo()
	svc := MustNewCartService(WithCartRepository(repo))

	lines := []cart.SyncLine{{ProductID: 100, Quantity: 3}}

	require.NoError(t, svc.Sync(context.Background(), 1, "5c0f9a3e-8f7e-4f4f-9a39-1d2b3c4d5e6f", lines))
	require.NoError(t, svc.Sync(context.Background(), 1, "5C0F9A3E-8F7E-4F4F-9A39-1D2B3C4D5E6F", lines))

	assert.Equal(t, 3, repo.lines[1][100])
}

func TestSyncRejectsMalformedToken(t *testing.T) {
	repo := newFakeCartRepo()
	svc := MustNewCartService(WithCartRepository(repo))

	err := svc.Sync(context.Background(), 1, "not-a-uuid", []cart.SyncLine{{ProductID: 100, Quantity: 1}})
	require.Error(t, err)
	assert.Empty(t, repo.lines[1])
}

func TestListReturnsUserLines(t *testing.T) {
	repo := newFakeCartRepo()
	repo.lines[1] = map[int64]int{100: 2}
	repo.lines[2] = map[int64]int{300: 9}

	svc := MustNewCartService(WithCartRepository(repo))

	lines, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(100), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
}
