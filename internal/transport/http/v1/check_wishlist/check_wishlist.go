package checkwishlist

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
	Check(ctx context.Context, userID int64, productIDs []int64) ([]int64, error)
}

// CheckWishlist reports which of the submitted products are on the
// authenticated user's wishlist. Guests get an empty result.
func CheckWishlist(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	var req dto.CheckWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for wishlist check", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for wishlist check", "error", err)

		return
	}

	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dto.CheckWishlistResponse{WishlistItems: []int64{}}); err != nil {
			slog.Error("Error writing response for wishlist check", "error", err)
		}

		return
	}

	owned, err := service.Check(r.Context(), *userID, req.ProductIDs)
	if err != nil {
		http.Error(w, "Failed to check wishlist", http.StatusInternalServerError)
		slog.Error("Error checking wishlist", "user_id", *userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto.CheckWishlistResponse{WishlistItems: owned}); err != nil {
		slog.Error("Error writing response for wishlist check", "error", err)
	}
}
