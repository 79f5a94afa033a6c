package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/service/models/wishlist"
)

// PostgresWishlistRepository persists saved products for authenticated
// users.
type PostgresWishlistRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresWishlistRepository creates a new Postgres wishlist repository.
func NewPostgresWishlistRepository(conn postgres.Conn) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Add saves the product on the user's wishlist. The (user_id, product_id)
// uniqueness turns repeated adds into a set union: false means the entry
// was already there.
func (r *PostgresWishlistRepository) Add(ctx context.Context, userID, productID int64) (bool, error) {
	now := time.Now()
	sql, args, err := r.sb.
		Insert("user_wishlists").
		Columns("user_id", "product_id", "created_at", "updated_at").
		Values(userID, productID, now, now).
		Suffix("ON CONFLICT (user_id, product_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build wishlist insert query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Remove drops the product from the user's wishlist. False means there was
// nothing to remove.
func (r *PostgresWishlistRepository) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	sql, args, err := r.sb.
		Delete("user_wishlists").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build wishlist delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByUser returns the user's wishlist items.
func (r *PostgresWishlistRepository) ListByUser(ctx context.Context, userID int64) ([]wishlist.Item, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "product_id", "created_at", "updated_at").
		From("user_wishlists").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var result []wishlist.Item
	for rows.Next() {
		var item wishlist.Item
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// FilterOwned returns the subset of productIDs on the user's wishlist.
func (r *PostgresWishlistRepository) FilterOwned(ctx context.Context, userID int64, productIDs []int64) ([]int64, error) {
	if len(productIDs) == 0 {
		return []int64{}, nil
	}

	sql, args, err := r.sb.
		Select("product_id").
		From("user_wishlists").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"product_id": productIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var productID int64
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		result = append(result, productID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
