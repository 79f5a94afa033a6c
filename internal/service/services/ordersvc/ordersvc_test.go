package ordersvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iorder "github.com/gildedcart/shop/internal/dal/interfaces/order"
	iorderitem "github.com/gildedcart/shop/internal/dal/interfaces/orderitem"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/orderitem"
)

type fakeOrderRepo struct {
	orders []order.Order

	// afterQuery runs once Query has read the store, letting a test
	// change an order between the read and the guarded update.
	afterQuery func()
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o.ID = int64(len(f.orders) + 1)
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrderRepo) FindByReference(_ context.Context, reference string) (*order.Order, error) {
	for i := range f.orders {
		if f.orders[i].Reference == reference {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if len(filter.Ids) > 0 && !contains(filter.Ids, o.ID) {
			continue
		}
		if len(filter.UserIds) > 0 && (o.UserID == nil || !contains(filter.UserIds, *o.UserID)) {
			continue
		}
		out = append(out, o)
	}
	if f.afterQuery != nil {
		f.afterQuery()
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, from, to order.Status) (*order.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			if f.orders[i].Status != from {
				return nil, nil
			}
			f.orders[i].Status = to
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ClaimByEmail(_ context.Context, userID int64, email string) (int64, error) {
	var claimed int64
	for i := range f.orders {
		if f.orders[i].UserID == nil && f.orders[i].Email == email {
			f.orders[i].UserID = &userID
			claimed++
		}
	}
	return claimed, nil
}

func contains(xs []int64, x int64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeOrderItemRepo struct {
	items []orderitem.OrderItem
}

func (f *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	f.items = append(f.items, items...)
	return items, nil
}

func (f *fakeOrderItemRepo) QueryByOrderIds(_ context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	var out []orderitem.OrderItem
	for _, item := range f.items {
		if contains(orderIds, item.OrderID) {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeUOW struct {
	orders *fakeOrderRepo
	items  *fakeOrderItemRepo
}

func (f *fakeUOW) OrderRepository() iorder.PostgresRepository         { return f.orders }
func (f *fakeUOW) OrderItemRepository() iorderitem.PostgresRepository { return f.items }

func newTestService() (*OrderService, *fakeUOW) {
	work := &fakeUOW{orders: &fakeOrderRepo{}, items: &fakeOrderItemRepo{}}
	svc := MustNewOrderService(WithUnitOfWorkFactory(func() unitOfWork { return work }))
	return svc, work
}

func TestGetOrdersJoinsLineItems(t *testing.T) {
	svc, work := newTestService()
	userID := int64(42)
	work.orders.orders = []order.Order{
		{ID: 1, UserID: &userID, Reference: "WA-AAAAAAAAAA", Status: order.StatusPending},
		{ID: 2, Reference: "WA-BBBBBBBBBB", Status: order.StatusPending},
	}
	work.items.items = []orderitem.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 100, Quantity: 2, UnitPriceKobo: 500000},
		{ID: 2, OrderID: 2, ProductID: 200, Quantity: 1, UnitPriceKobo: 100000},
	}

	orders, err := svc.GetOrders(context.Background(), &order.QueryOrdersModel{UserIds: []int64{userID}})
	require.NoError(t, err)

	require.Len(t, orders, 1)
	require.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, int64(100), orders[0].OrderItems[0].ProductID)
}

func TestGetOrdersEmptyResult(t *testing.T) {
	svc, _ := newTestService()

	orders, err := svc.GetOrders(context.Background(), &order.QueryOrdersModel{UserIds: []int64{99}})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUpdateStatusAllowsLifecycleTransition(t *testing.T) {
	svc, work := newTestService()
	work.orders.orders = []order.Order{{ID: 1, Status: order.StatusPending}}

	updated, err := svc.UpdateStatus(context.Background(), 1, order.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, updated.Status)
}

func TestUpdateStatusRejectsBackwardTransition(t *testing.T) {
	svc, work := newTestService()
	work.orders.orders = []order.Order{{ID: 1, Status: order.StatusCompleted}}

	_, err := svc.UpdateStatus(context.Background(), 1, order.StatusPaid)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusCompleted, work.orders.orders[0].Status)
}

func TestUpdateStatusConcurrentTransitionConflict(t *testing.T) {
	svc, work := newTestService()
	work.orders.orders = []order.Order{{ID: 1, Status: order.StatusPending}}
	work.orders.afterQuery = func() {
		work.orders.orders[0].Status = order.StatusCancelled
	}

	_, err := svc.UpdateStatus(context.Background(), 1, order.StatusPaid)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusCancelled, work.orders.orders[0].Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 7, order.StatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestClaimGuestOrders(t *testing.T) {
	svc, work := newTestService()
	other := int64(7)
	work.orders.orders = []order.Order{
		{ID: 1, Email: "ada@example.com"},
		{ID: 2, Email: "ada@example.com", UserID: &other},
		{ID: 3, Email: "someone@else.com"},
	}

	claimed, err := svc.ClaimGuestOrders(context.Background(), 42, "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(1), claimed, "orders already owned are untouched")
	require.NotNil(t, work.orders.orders[0].UserID)
	assert.Equal(t, int64(42), *work.orders.orders[0].UserID)
}
