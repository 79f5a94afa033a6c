package cartsvc

import (
	"context"
	"fmt"
	"log/slog"

	icart "github.com/gildedcart/shop/internal/dal/interfaces/cart"
	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/google/uuid"
)

// CartService reconciles guest carts into the server-side cart and serves
// cart reads for authenticated users.
type CartService struct {
	cartRepo icart.PostgresRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(r icart.PostgresRepository) option {
	return func(s *CartService) {
		s.cartRepo = r
	}
}

// Sync merges guest cart lines into the user's server cart, summing
// quantities for duplicate product ids. The sync token makes the merge
// idempotent: a replay with the same token changes nothing.
func (s *CartService) Sync(ctx context.Context, userID int64, syncToken string, lines []cart.SyncLine) error {
	// Canonicalize so the uniqueness claim is case-insensitive; clients
	// disagree on UUID casing.
	token, err := uuid.Parse(syncToken)
	if err != nil {
		return fmt.Errorf("invalid sync token: %w", err)
	}

	claimed, err := s.cartRepo.RecordSync(ctx, userID, token.String())
	if err != nil {
		return fmt.Errorf("failed to record cart sync: %w", err)
	}
	if !claimed {
		slog.Info("Cart sync replayed, skipping merge", "user_id", userID, "sync_token", token.String())
		return nil
	}

	for _, line := range lines {
		if err := s.cartRepo.AddQuantity(ctx, userID, line.ProductID, line.Quantity); err != nil {
			return fmt.Errorf("failed to merge cart line for product %d: %w", line.ProductID, err)
		}
	}

	return nil
}

// List returns the user's server cart lines.
func (s *CartService) List(ctx context.Context, userID int64) ([]cart.Line, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	if lines == nil {
		lines = []cart.Line{}
	}

	return lines, nil
}
