package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	iorder "github.com/gildedcart/shop/internal/dal/interfaces/order"
	iorderitem "github.com/gildedcart/shop/internal/dal/interfaces/orderitem"
	iuser "github.com/gildedcart/shop/internal/dal/interfaces/user"
	iuserprofile "github.com/gildedcart/shop/internal/dal/interfaces/userprofile"
	"github.com/gildedcart/shop/internal/gateway/paystack"
	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/discount"
	"github.com/gildedcart/shop/internal/service/models/geo"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/orderitem"
	"github.com/gildedcart/shop/internal/service/models/userprofile"
)

type fakeOrderRepo struct {
	orders    []order.Order
	nextID    int64
	insertErr error
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	for _, existing := range f.orders {
		if existing.Reference == o.Reference {
			return nil, order.ErrDuplicateReference
		}
	}
	f.nextID++
	o.ID = f.nextID
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
		if len(filter.Ids) > 0 && !containsInt64(filter.Ids, o.ID) {
			continue
		}
		out = append(out, o)
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
	return nil, errors.New("order not found")
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

func containsInt64(xs []int64, x int64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeOrderItemRepo struct {
	items     []orderitem.OrderItem
	insertErr error
}

func (f *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	for i := range items {
		items[i].ID = int64(len(f.items) + 1)
		f.items = append(f.items, items[i])
	}
	return items, nil
}

func (f *fakeOrderItemRepo) QueryByOrderIds(_ context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	var out []orderitem.OrderItem
	for _, item := range f.items {
		if containsInt64(orderIds, item.OrderID) {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	names map[int64]string
}

func (f *fakeUserRepo) UpdateName(_ context.Context, userID int64, name string) error {
	if f.names == nil {
		f.names = make(map[int64]string)
	}
	f.names[userID] = name
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]userprofile.UserProfile
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile userprofile.UserProfile) error {
	if f.profiles == nil {
		f.profiles = make(map[int64]userprofile.UserProfile)
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID int64) (*userprofile.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakeUOW struct {
	orders   *fakeOrderRepo
	items    *fakeOrderItemRepo
	users    *fakeUserRepo
	profiles *fakeProfileRepo

	began      int
	committed  int
	rolledBack int
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{
		orders:   &fakeOrderRepo{},
		items:    &fakeOrderItemRepo{},
		users:    &fakeUserRepo{},
		profiles: &fakeProfileRepo{},
	}
}

func (f *fakeUOW) Begin(context.Context) error    { f.began++; return nil }
func (f *fakeUOW) Commit(context.Context) error   { f.committed++; return nil }
func (f *fakeUOW) Rollback(context.Context) error { f.rolledBack++; return nil }

func (f *fakeUOW) OrderRepository() iorder.PostgresRepository             { return f.orders }
func (f *fakeUOW) OrderItemRepository() iorderitem.PostgresRepository     { return f.items }
func (f *fakeUOW) UserRepository() iuser.PostgresRepository               { return f.users }
func (f *fakeUOW) UserProfileRepository() iuserprofile.PostgresRepository { return f.profiles }

type fakeGateway struct {
	auth      *paystack.Authorization
	initErr   error
	txn       *paystack.Transaction
	verifyErr error

	initCalls   int
	verifyCalls int
}

func (f *fakeGateway) InitializeTransaction(_ context.Context, _ string, _ int64, _ string, _ paystack.Metadata) (*paystack.Authorization, error) {
	f.initCalls++
	if f.initErr != nil {
		return nil, f.initErr
	}
	return f.auth, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, _ string) (*paystack.Transaction, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.txn, nil
}

type fakeNotifier struct {
	notified []order.Order
}

func (f *fakeNotifier) OrderCreated(_ context.Context, o order.Order) {
	f.notified = append(f.notified, o)
}

type fakeGeoRepo struct {
	states map[string]*geo.State
	cities map[string]*geo.City
}

func (f *fakeGeoRepo) FindStateByName(_ context.Context, name string) (*geo.State, error) {
	return f.states[name], nil
}

func (f *fakeGeoRepo) FindCityByName(_ context.Context, _ int64, name string) (*geo.City, error) {
	return f.cities[name], nil
}

func (f *fakeGeoRepo) FindCityFee(context.Context, int64, int64) (*geo.DispatchFee, error) {
	return nil, nil
}

func (f *fakeGeoRepo) FindStateFee(context.Context, int64) (*geo.DispatchFee, error) {
	return nil, nil
}

type fakeDiscountRepo struct {
	codes map[string]*discount.DiscountCode
}

func (f *fakeDiscountRepo) FindActiveByCode(_ context.Context, code string, now time.Time) (*discount.DiscountCode, error) {
	d, ok := f.codes[code]
	if !ok || !d.ExpiresAt.After(now) {
		return nil, nil
	}
	return d, nil
}

type fakePendingRepo struct {
	records   map[string]checkout.PendingCheckout
	insertErr error
	deleted   []string
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{records: make(map[string]checkout.PendingCheckout)}
}

func (f *fakePendingRepo) Insert(_ context.Context, pc checkout.PendingCheckout) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records[pc.Reference] = pc
	return nil
}

func (f *fakePendingRepo) FindByReference(_ context.Context, reference string) (*checkout.PendingCheckout, error) {
	pc, ok := f.records[reference]
	if !ok {
		return nil, nil
	}
	return &pc, nil
}

func (f *fakePendingRepo) DeleteByReference(_ context.Context, reference string) error {
	delete(f.records, reference)
	f.deleted = append(f.deleted, reference)
	return nil
}

type fakeCartRepo struct {
	lines    map[int64]map[int64]int
	synced   map[string]bool
	cleared  []int64
	clearErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		lines:  make(map[int64]map[int64]int),
		synced: make(map[string]bool),
	}
}

func (f *fakeCartRepo) RecordSync(_ context.Context, userID int64, syncToken string) (bool, error) {
	key := fmt.Sprintf("%d:%s", userID, syncToken)
	if f.synced[key] {
		return false, nil
	}
	f.synced[key] = true
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
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.lines, userID)
	f.cleared = append(f.cleared, userID)
	return nil
}
