package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/cart"
)

// PostgresCartRepository persists the server-side cart for authenticated
// users.
type PostgresCartRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresCartRepository creates a new Postgres cart repository.
func NewPostgresCartRepository(conn postgres.Conn) *PostgresCartRepository {
	return &PostgresCartRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RecordSync claims a sync token for a user. The (user_id, sync_token)
// uniqueness makes a replayed merge a no-op: false means the token was
// already used.
func (r *PostgresCartRepository) RecordSync(ctx context.Context, userID int64, syncToken string) (bool, error) {
	sql, args, err := r.sb.
		Insert("cart_sync_log").
		Columns("user_id", "sync_token", "created_at").
		Values(userID, syncToken, time.Now()).
		Suffix("ON CONFLICT (user_id, sync_token) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sync log query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to record cart sync: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddQuantity adds qty to the user's line for the product, creating the
// line when absent. Duplicate product ids reconcile by summing quantities.
func (r *PostgresCartRepository) AddQuantity(ctx context.Context, userID, productID int64, qty int) error {
	now := time.Now()
	sql, args, err := r.sb.
		Insert("user_carts").
		Columns("user_id", "product_id", "quantity", "created_at", "updated_at").
		Values(userID, productID, qty, now, now).
		Suffix(`ON CONFLICT (user_id, product_id) DO UPDATE SET
			quantity = user_carts.quantity + EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cart upsert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to add cart quantity: %w", err)
	}

	return nil
}

// ListByUser returns the user's server cart lines.
func (r *PostgresCartRepository) ListByUser(ctx context.Context, userID int64) ([]cart.Line, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "product_id", "quantity", "created_at", "updated_at").
		From("user_carts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var result []cart.Line
	for rows.Next() {
		var line cart.Line
		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.CreatedAt,
			&line.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		result = append(result, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ClearUser removes every line of the user's server cart.
func (r *PostgresCartRepository) ClearUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.
		Delete("user_carts").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
