package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/jackc/pgx/v5"
)

// PostgresPendingCheckoutRepository stores the purchase intent written at
// gateway initiation, keyed by gateway reference.
type PostgresPendingCheckoutRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresPendingCheckoutRepository creates a new Postgres pending
// checkout repository.
func NewPostgresPendingCheckoutRepository(conn postgres.Conn) *PostgresPendingCheckoutRepository {
	return &PostgresPendingCheckoutRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists the intent record. The payload is stored as jsonb.
func (r *PostgresPendingCheckoutRepository) Insert(ctx context.Context, pc checkout.PendingCheckout) error {
	payload, err := json.Marshal(pc.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	sql, args, err := r.sb.
		Insert("pending_checkouts").
		Columns("reference", "payload", "created_at").
		Values(pc.Reference, payload, pc.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert pending checkout: %w", err)
	}

	return nil
}

// FindByReference returns the intent record, or (nil, nil).
func (r *PostgresPendingCheckoutRepository) FindByReference(
	ctx context.Context,
	reference string,
) (*checkout.PendingCheckout, error) {
	sql, args, err := r.sb.
		Select("reference", "payload", "created_at").
		From("pending_checkouts").
		Where(sq.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var pc checkout.PendingCheckout
	var payload []byte
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&pc.Reference, &payload, &pc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending checkout: %w", err)
	}

	if err := json.Unmarshal(payload, &pc.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &pc, nil
}

// DeleteByReference removes the intent record once the order is committed.
func (r *PostgresPendingCheckoutRepository) DeleteByReference(ctx context.Context, reference string) error {
	sql, args, err := r.sb.
		Delete("pending_checkouts").
		Where(sq.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete pending checkout: %w", err)
	}

	return nil
}
