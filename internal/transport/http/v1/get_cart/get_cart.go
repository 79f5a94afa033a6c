package getcart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, userID int64) ([]cart.Line, error)
}

// GetCart returns the authenticated user's server-side cart.
func GetCart(w http.ResponseWriter, r *http.Request, service service) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	lines, err := service.List(r.Context(), *userID)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		slog.Error("Error loading cart", "user_id", *userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.CartToResponse(lines)); err != nil {
		slog.Error("Error writing response for get cart", "error", err)
	}
}
