package togglewishlist

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
	Toggle(ctx context.Context, userID, productID int64) (bool, error)
}

// ToggleWishlist flips one product's presence on the authenticated user's
// wishlist and reports the resulting state.
func ToggleWishlist(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	var req dto.ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for wishlist toggle", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for wishlist toggle", "error", err)

		return
	}

	inWishlist, err := service.Toggle(r.Context(), *userID, req.ProductID)
	if err != nil {
		http.Error(w, "Failed to toggle wishlist item", http.StatusInternalServerError)
		slog.Error("Error toggling wishlist item", "user_id", *userID, "product_id", req.ProductID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto.ToggleWishlistResponse{InWishlist: inWishlist}); err != nil {
		slog.Error("Error writing response for wishlist toggle", "error", err)
	}
}
