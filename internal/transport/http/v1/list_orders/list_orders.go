package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// ListOrders returns the authenticated user's orders, newest first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID := converters.UserIDFromRequest(r)
	if userID == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)

		return
	}

	query := r.URL.Query()

	filter := &order.QueryOrdersModel{
		UserIds: []int64{*userID},
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		slog.Error("Error listing orders", "user_id", *userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrdersToResponse(orders)); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
