package wishlistsvc

import (
	"context"
	"fmt"

	iwishlist "github.com/gildedcart/shop/internal/dal/interfaces/wishlist"
	"github.com/gildedcart/shop/internal/service/models/wishlist"
)

// WishlistService reconciles guest wishlists into the server-side wishlist
// and serves wishlist reads for authenticated users.
type WishlistService struct {
	wishlistRepo iwishlist.PostgresRepository
}

// option is a function that configures the WishlistService.
type option func(*WishlistService)

// MustNewWishlistService creates a new WishlistService.
func MustNewWishlistService(opts ...option) *WishlistService {
	s := &WishlistService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithWishlistRepository(r iwishlist.PostgresRepository) option {
	return func(s *WishlistService) {
		s.wishlistRepo = r
	}
}

// Toggle flips the product's presence on the user's wishlist and reports
// whether it is saved afterwards.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	removed, err := s.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle wishlist item: %w", err)
	}
	if removed {
		return false, nil
	}

	if _, err := s.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return false, fmt.Errorf("failed to toggle wishlist item: %w", err)
	}

	return true, nil
}

// Sync merges guest wishlist product ids into the user's server wishlist.
// The merge is a set union, so replaying the same ids changes nothing.
func (s *WishlistService) Sync(ctx context.Context, userID int64, productIDs []int64) error {
	for _, productID := range productIDs {
		if _, err := s.wishlistRepo.Add(ctx, userID, productID); err != nil {
			return fmt.Errorf("failed to merge wishlist item for product %d: %w", productID, err)
		}
	}

	return nil
}

// List returns the user's server wishlist items.
func (s *WishlistService) List(ctx context.Context, userID int64) ([]wishlist.Item, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	if items == nil {
		items = []wishlist.Item{}
	}

	return items, nil
}

// Check returns which of the given product ids are on the user's wishlist.
func (s *WishlistService) Check(ctx context.Context, userID int64, productIDs []int64) ([]int64, error) {
	owned, err := s.wishlistRepo.FilterOwned(ctx, userID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}
	if owned == nil {
		owned = []int64{}
	}

	return owned, nil
}
