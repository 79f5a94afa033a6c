package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/geo"
	"github.com/jackc/pgx/v5"
)

// PostgresGeoRepository looks up states, cities and dispatch fees.
type PostgresGeoRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresGeoRepository creates a new Postgres geography repository.
func NewPostgresGeoRepository(conn postgres.Conn) *PostgresGeoRepository {
	return &PostgresGeoRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindStateByName returns the state with the given name, or (nil, nil) when
// no state matches.
func (r *PostgresGeoRepository) FindStateByName(ctx context.Context, name string) (*geo.State, error) {
	sql, args, err := r.sb.
		Select("id", "name", "capital").
		From("states").
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var s geo.State
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.Capital)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}

	return &s, nil
}

// FindCityByName returns the city with the given name scoped to a state, or
// (nil, nil) when no city matches. A same-named city under another state
// never matches.
func (r *PostgresGeoRepository) FindCityByName(ctx context.Context, stateID int64, name string) (*geo.City, error) {
	sql, args, err := r.sb.
		Select("id", "state_id", "name").
		From("cities").
		Where(sq.Eq{"state_id": stateID}).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c geo.City
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.StateID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query city: %w", err)
	}

	return &c, nil
}

// FindCityFee returns the city-level dispatch fee override, or (nil, nil).
func (r *PostgresGeoRepository) FindCityFee(ctx context.Context, stateID, cityID int64) (*geo.DispatchFee, error) {
	return r.findFee(ctx, sq.And{
		sq.Eq{"state_id": stateID},
		sq.Eq{"city_id": cityID},
	})
}

// FindStateFee returns the state-level dispatch fee fallback, or (nil, nil).
func (r *PostgresGeoRepository) FindStateFee(ctx context.Context, stateID int64) (*geo.DispatchFee, error) {
	return r.findFee(ctx, sq.And{
		sq.Eq{"state_id": stateID},
		sq.Eq{"city_id": nil},
	})
}

func (r *PostgresGeoRepository) findFee(ctx context.Context, where sq.And) (*geo.DispatchFee, error) {
	sql, args, err := r.sb.
		Select("id", "state_id", "city_id", "amount_kobo").
		From("dispatch_fees").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var fee geo.DispatchFee
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&fee.ID, &fee.StateID, &fee.CityID, &fee.AmountKobo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch fee: %w", err)
	}

	return &fee, nil
}
