package syncwishlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	Sync(ctx context.Context, userID int64, productIDs []int64) error
}

// SyncWishlist merges a guest wishlist into the authenticated user's
// wishlist. The merge is a set union, so replays change nothing.
func SyncWishlist(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	var req dto.SyncWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for wishlist sync", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for wishlist sync", "error", err)

		return
	}

	if err := service.Sync(r.Context(), *userID, req.ProductIDs); err != nil {
		http.Error(w, "Failed to sync wishlist", http.StatusInternalServerError)
		slog.Error("Error syncing wishlist", "user_id", *userID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
