package dispatchfee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	QuoteFee(ctx context.Context, stateName, cityName string) (int64, error)
}

// DispatchFee quotes the delivery fee for a state and city pair. Unknown
// locations fall back to the configured default rather than failing.
func DispatchFee(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()
	stateName := query.Get("state")
	cityName := query.Get("city")

	feeKobo, err := service.QuoteFee(r.Context(), stateName, cityName)
	if err != nil {
		http.Error(w, "Failed to quote dispatch fee", http.StatusInternalServerError)
		slog.Error("Error quoting dispatch fee", "state", stateName, "city", cityName, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto.DispatchFeeResponse{Fee: dto.KoboToNaira(feeKobo)}); err != nil {
		slog.Error("Error writing response for dispatch fee", "error", err)
	}
}
