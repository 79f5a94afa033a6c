package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/userprofile"
	"github.com/jackc/pgx/v5"
)

// PostgresUserProfileRepository persists shipping defaults per user.
type PostgresUserProfileRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresUserProfileRepository creates a new Postgres user profile
// repository.
func NewPostgresUserProfileRepository(conn postgres.Conn) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Upsert writes the profile, replacing existing shipping defaults whether
// or not a row pre-existed.
func (r *PostgresUserProfileRepository) Upsert(ctx context.Context, profile userprofile.UserProfile) error {
	sql, args, err := r.sb.
		Insert("user_profiles").
		Columns("user_id", "phone", "state_id", "city_id", "address", "postal_code", "updated_at").
		Values(
			profile.UserID,
			profile.Phone,
			profile.StateID,
			profile.CityID,
			profile.Address,
			profile.PostalCode,
			time.Now(),
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			state_id = EXCLUDED.state_id,
			city_id = EXCLUDED.city_id,
			address = EXCLUDED.address,
			postal_code = EXCLUDED.postal_code,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return nil
}

// FindByUserID returns the profile for a user, or (nil, nil).
func (r *PostgresUserProfileRepository) FindByUserID(ctx context.Context, userID int64) (*userprofile.UserProfile, error) {
	sql, args, err := r.sb.
		Select("user_id", "phone", "state_id", "city_id", "address", "postal_code", "updated_at").
		From("user_profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var p userprofile.UserProfile
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&p.UserID,
		&p.Phone,
		&p.StateID,
		&p.CityID,
		&p.Address,
		&p.PostalCode,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	return &p, nil
}
