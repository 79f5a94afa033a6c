package paystackcallback

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/services/checkoutsvc"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	HandlePaystackCallback(ctx context.Context, reference string) (*order.Order, error)
}

// PaystackCallback verifies a gateway return and reports the outcome.
// The reference arrives as "reference" or, on older redirects, "trxref".
func PaystackCallback(w http.ResponseWriter, r *http.Request, service service) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		reference = r.URL.Query().Get("trxref")
	}

	created, err := service.HandlePaystackCallback(r.Context(), reference)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, checkoutsvc.ErrReferenceMissing):
			status = http.StatusBadRequest
		case errors.Is(err, checkoutsvc.ErrVerificationFailed):
			status = http.StatusPaymentRequired
		case errors.Is(err, checkoutsvc.ErrOrderDataMissing):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, checkoutsvc.ErrOrderNotRecorded):
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		slog.Error("Error handling gateway callback", "reference", reference, "error", err)

		return
	}

	response := dto.CallbackResponse{
		Reference: created.Reference,
		Status:    string(created.Status),
		Total:     dto.KoboToNaira(created.TotalKobo),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error writing response for gateway callback", "error", err)
	}
}
