package getwishlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gildedcart/shop/internal/service/models/wishlist"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, userID int64) ([]wishlist.Item, error)
}

// GetWishlist returns the authenticated user's saved products. Guests get
// an empty wishlist; theirs lives client-side until login.
func GetWishlist(w http.ResponseWriter, r *http.Request, service service) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dto.WishlistResponse{Items: []dto.WishlistItemResponse{}}); err != nil {
			slog.Error("Error writing response for get wishlist", "error", err)
		}

		return
	}

	items, err := service.List(r.Context(), *userID)
	if err != nil {
		http.Error(w, "Failed to load wishlist", http.StatusInternalServerError)
		slog.Error("Error loading wishlist", "user_id", *userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.WishlistToResponse(items)); err != nil {
		slog.Error("Error writing response for get wishlist", "error", err)
	}
}
