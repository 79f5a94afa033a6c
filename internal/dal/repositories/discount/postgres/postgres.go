package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/discount"
	"github.com/jackc/pgx/v5"
)

// PostgresDiscountRepository looks up discount codes.
type PostgresDiscountRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresDiscountRepository creates a new Postgres discount repository.
func NewPostgresDiscountRepository(conn postgres.Conn) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindActiveByCode returns the discount code matching exactly and still
// active at now, or (nil, nil). Codes are matched case-sensitively.
func (r *PostgresDiscountRepository) FindActiveByCode(
	ctx context.Context,
	code string,
	now time.Time,
) (*discount.DiscountCode, error) {
	sql, args, err := r.sb.
		Select("id", "code", "min_amount_kobo", "discount_kobo", "expires_at", "created_at").
		From("discount_codes").
		Where(sq.Eq{"code": code}).
		Where(sq.Gt{"expires_at": now}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var d discount.DiscountCode
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&d.ID,
		&d.Code,
		&d.MinAmountKobo,
		&d.DiscountKobo,
		&d.ExpiresAt,
		&d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query discount code: %w", err)
	}

	return &d, nil
}
