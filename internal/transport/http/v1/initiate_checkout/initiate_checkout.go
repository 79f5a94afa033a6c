package initiatecheckout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gildedcart/shop/internal/gateway/paystack"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	InitiatePaystack(ctx context.Context, payload checkout.Payload) (*paystack.Authorization, error)
}

// InitiateCheckout validates a checkout submission and starts the hosted
// gateway flow. The response carries the redirect the client must follow.
func InitiateCheckout(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for initiate checkout", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for initiate checkout", "error", err)

		return
	}

	payload := converters.CheckoutPayloadFromRequest(req, converters.UserIDFromRequest(r))

	auth, err := service.InitiatePaystack(r.Context(), payload)
	if err != nil {
		http.Error(w, "Failed to initiate payment", http.StatusBadGateway)
		slog.Error("Error initiating gateway transaction", "error", err)

		return
	}

	response := dto.InitiateCheckoutResponse{
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Reference:        auth.Reference,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error writing response for initiate checkout", "error", err)
	}
}
