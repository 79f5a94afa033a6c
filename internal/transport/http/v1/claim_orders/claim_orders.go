package claimorders

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
	ClaimGuestOrders(ctx context.Context, userID int64, email string) (int64, error)
}

// ClaimOrders attaches guest orders placed with the given email to the
// authenticated user.
func ClaimOrders(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	var req dto.ClaimOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for claim orders", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for claim orders", "error", err)

		return
	}

	claimed, err := service.ClaimGuestOrders(r.Context(), *userID, req.Email)
	if err != nil {
		http.Error(w, "Failed to claim orders", http.StatusInternalServerError)
		slog.Error("Error claiming guest orders", "user_id", *userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto.ClaimOrdersResponse{Claimed: claimed}); err != nil {
		slog.Error("Error writing response for claim orders", "error", err)
	}
}
