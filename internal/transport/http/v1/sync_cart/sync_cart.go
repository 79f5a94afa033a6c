package synccart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	Sync(ctx context.Context, userID int64, syncToken string, lines []cart.SyncLine) error
}

// SyncCart merges a guest cart into the authenticated user's cart. The
// sync token makes replays of the same merge a no-op.
func SyncCart(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	var req dto.SyncCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for cart sync", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for cart sync", "error", err)

		return
	}

	if err := service.Sync(r.Context(), *userID, req.SyncToken, converters.SyncLinesFromRequest(req)); err != nil {
		http.Error(w, "Failed to sync cart", http.StatusInternalServerError)
		slog.Error("Error syncing cart", "user_id", *userID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
