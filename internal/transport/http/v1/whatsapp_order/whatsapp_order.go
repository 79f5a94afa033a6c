package whatsapporder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	CreateWhatsAppOrder(ctx context.Context, payload checkout.Payload) (*order.Order, error)
}

// CreateWhatsAppOrder records a manually confirmed order. No gateway is
// involved; the order starts pending and payment settles over chat.
func CreateWhatsAppOrder(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for whatsapp order", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for whatsapp order", "error", err)

		return
	}

	payload := converters.CheckoutPayloadFromRequest(req, converters.UserIDFromRequest(r))

	created, err := service.CreateWhatsAppOrder(r.Context(), payload)
	if err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		slog.Error("Error creating whatsapp order", "error", err)

		return
	}

	response := dto.WhatsAppOrderResponse{
		ID:        created.ID,
		Reference: created.Reference,
		Status:    string(created.Status),
		Total:     dto.KoboToNaira(created.TotalKobo),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error writing response for whatsapp order", "error", err)
	}
}
