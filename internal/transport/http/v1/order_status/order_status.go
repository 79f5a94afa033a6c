package orderstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/services/ordersvc"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, id int64, next order.Status) (*order.Order, error)
}

// UpdateOrderStatus transitions an order along its lifecycle. Transitions
// outside the allowed graph are rejected with a conflict.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid order id", http.StatusBadRequest)

		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for order status update", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		slog.Error("Error validating request for order status update", "error", err)

		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), id, next)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ordersvc.ErrOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, order.ErrInvalidTransition):
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		slog.Error("Error updating order status", "order_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(*updated)); err != nil {
		slog.Error("Error writing response for order status update", "error", err)
	}
}
