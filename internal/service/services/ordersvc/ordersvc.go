package ordersvc

import (
	"context"
	"errors"
	"fmt"

	iorder "github.com/gildedcart/shop/internal/dal/interfaces/order"
	iorderitem "github.com/gildedcart/shop/internal/dal/interfaces/orderitem"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/dal/uow"
	"github.com/gildedcart/shop/internal/service/models/order"
)

// ErrOrderNotFound is returned when a referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

type unitOfWork interface {
	OrderRepository() iorder.PostgresRepository
	OrderItemRepository() iorderitem.PostgresRepository
}

// OrderService serves order reads and the peripheral lifecycle operations
// the admin and account screens depend on.
type OrderService struct {
	newUOW func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = f
	}
}

// GetOrders retrieves orders with their line items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}

	orderItems, err := work.OrderItemRepository().QueryByOrderIds(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range orderItems {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// UpdateStatus transitions an order along its lifecycle. Monetary fields
// are immutable after creation; only the status ever changes.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	id int64,
	next order.Status,
) (*order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	current := orders[0].Status
	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, current, next)
	}

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, current, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Someone else moved the order between our read and the guarded
		// update. The caller retries against the fresh status.
		return nil, fmt.Errorf("%w: order %d left %s concurrently", order.ErrInvalidTransition, id, current)
	}

	return updated, nil
}

// ClaimGuestOrders attaches guest orders matching the email to a newly
// registered user. Returns the number of claimed orders.
func (s *OrderService) ClaimGuestOrders(ctx context.Context, userID int64, email string) (int64, error) {
	work := s.newUOW()

	claimed, err := work.OrderRepository().ClaimByEmail(ctx, userID, email)
	if err != nil {
		return 0, fmt.Errorf("failed to claim guest orders: %w", err)
	}

	return claimed, nil
}
