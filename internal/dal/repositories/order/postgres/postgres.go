package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/currency"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

var orderColumns = []string{
	"id",
	"user_id",
	"discount_id",
	"reference",
	"name",
	"email",
	"phone",
	"state_id",
	"city_id",
	"address",
	"postal_code",
	"payment_method",
	"delivery_method",
	"subtotal_kobo",
	"total_kobo",
	"currency",
	"status",
	"order_note",
	"created_at",
	"updated_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id             int64     `db:"id"`
	UserId         *int64    `db:"user_id"`
	DiscountId     *int64    `db:"discount_id"`
	Reference      string    `db:"reference"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	StateId        *int64    `db:"state_id"`
	CityId         *int64    `db:"city_id"`
	Address        string    `db:"address"`
	PostalCode     string    `db:"postal_code"`
	PaymentMethod  string    `db:"payment_method"`
	DeliveryMethod string    `db:"delivery_method"`
	SubtotalKobo   int64     `db:"subtotal_kobo"`
	TotalKobo      int64     `db:"total_kobo"`
	Currency       string    `db:"currency"`
	Status         string    `db:"status"`
	OrderNote      string    `db:"order_note"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return nil, err
	}
	deliveryMethod, err := order.ParseDeliveryMethod(o.DeliveryMethod)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:             o.Id,
		UserID:         o.UserId,
		DiscountID:     o.DiscountId,
		Reference:      o.Reference,
		Name:           o.Name,
		Email:          o.Email,
		Phone:          o.Phone,
		StateID:        o.StateId,
		CityID:         o.CityId,
		Address:        o.Address,
		PostalCode:     o.PostalCode,
		PaymentMethod:  paymentMethod,
		DeliveryMethod: deliveryMethod,
		SubtotalKobo:   o.SubtotalKobo,
		TotalKobo:      o.TotalKobo,
		Currency:       cur,
		Status:         status,
		OrderNote:      o.OrderNote,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		OrderItems:     []orderitem.OrderItem{}, // populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresOrderRepository) scanRow(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.DiscountId,
		&dal.Reference,
		&dal.Name,
		&dal.Email,
		&dal.Phone,
		&dal.StateId,
		&dal.CityId,
		&dal.Address,
		&dal.PostalCode,
		&dal.PaymentMethod,
		&dal.DeliveryMethod,
		&dal.SubtotalKobo,
		&dal.TotalKobo,
		&dal.Currency,
		&dal.Status,
		&dal.OrderNote,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return dal.ToModel()
}

// Insert persists a single order row. A unique violation on the reference
// column is mapped to order.ErrDuplicateReference so callers can treat the
// order as already processed.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"user_id",
			"discount_id",
			"reference",
			"name",
			"email",
			"phone",
			"state_id",
			"city_id",
			"address",
			"postal_code",
			"payment_method",
			"delivery_method",
			"subtotal_kobo",
			"total_kobo",
			"currency",
			"status",
			"order_note",
			"created_at",
			"updated_at",
		).
		Values(
			o.UserID,
			o.DiscountID,
			o.Reference,
			o.Name,
			o.Email,
			o.Phone,
			o.StateID,
			o.CityID,
			o.Address,
			o.PostalCode,
			string(o.PaymentMethod),
			string(o.DeliveryMethod),
			o.SubtotalKobo,
			o.TotalKobo,
			o.Currency.String(),
			string(o.Status),
			o.OrderNote,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING " + joinColumns(orderColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, order.ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	inserted.OrderItems = append(inserted.OrderItems, o.OrderItems...)

	return inserted, nil
}

// FindByReference returns the order with the given reference, or (nil, nil)
// when none exists.
func (r *PostgresOrderRepository) FindByReference(ctx context.Context, reference string) (*order.Order, error) {
	orders, err := r.Query(ctx, &order.QueryOrdersModel{References: []string{reference}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if len(filter.References) > 0 {
		query = query.Where(sq.Eq{"reference": filter.References})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus moves an order from one status to another. The from status
// guards the update against a concurrent transition: (nil, nil) means the
// row was no longer in that status. Monetary fields are never touched here.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to order.Status) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", string(to)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"status": string(from)}).
		Suffix("RETURNING " + joinColumns(orderColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return updated, nil
}

// ClaimByEmail attaches guest orders matching the email to a user, returning
// the number of claimed rows.
func (r *PostgresOrderRepository) ClaimByEmail(ctx context.Context, userID int64, email string) (int64, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("user_id", userID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"email": email}).
		Where(sq.Eq{"user_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build claim query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to claim orders: %w", err)
	}

	return tag.RowsAffected(), nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
