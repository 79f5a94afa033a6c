package converters

import (
	"net/http"
	"strconv"

	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/wishlist"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
)

// UserIDFromRequest reads the authenticated user id set by the upstream
// auth proxy. A missing or malformed header means a guest request.
func UserIDFromRequest(r *http.Request) *int64 {
	raw := r.Header.Get("X-User-Id")
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}

	return &id
}

// CheckoutPayloadFromRequest maps a checkout submission onto the service
// payload, converting naira amounts to kobo.
func CheckoutPayloadFromRequest(req dto.CheckoutRequest, userID *int64) checkout.Payload {
	lines := make([]checkout.CartLine, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		lines = append(lines, checkout.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			PriceKobo: dto.NairaToKobo(item.Price),
		})
	}

	return checkout.Payload{
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		PostalCode:      req.PostalCode,
		DeliveryMethod:  order.DeliveryMethod(req.DeliveryMethod),
		ShippingFeeKobo: dto.NairaToKobo(req.ShippingFee),
		DiscountCode:    req.DiscountCode,
		Notes:           req.Notes,
		CartItems:       lines,
		SubtotalKobo:    dto.NairaToKobo(req.Subtotal),
		TotalKobo:       dto.NairaToKobo(req.Total),
	}
}

// OrderToResponse maps an order and its items onto the API representation.
func OrderToResponse(o order.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: dto.KoboToNaira(item.UnitPriceKobo),
		})
	}

	return dto.OrderResponse{
		ID:             o.ID,
		Reference:      o.Reference,
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		DeliveryMethod: string(o.DeliveryMethod),
		Name:           o.Name,
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		PostalCode:     o.PostalCode,
		Subtotal:       dto.KoboToNaira(o.SubtotalKobo),
		Total:          dto.KoboToNaira(o.TotalKobo),
		Currency:       string(o.Currency),
		Note:           o.OrderNote,
		Items:          items,
		CreatedAt:      o.CreatedAt,
	}
}

// OrdersToResponse maps a page of orders.
func OrdersToResponse(orders []order.Order) dto.ListOrdersResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o))
	}

	return dto.ListOrdersResponse{Orders: out}
}

// CartToResponse maps server cart lines.
func CartToResponse(lines []cart.Line) dto.CartResponse {
	items := make([]dto.CartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, dto.CartLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return dto.CartResponse{Items: items}
}

// WishlistToResponse maps saved wishlist items.
func WishlistToResponse(items []wishlist.Item) dto.WishlistResponse {
	out := make([]dto.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.WishlistItemResponse{ProductID: item.ProductID})
	}

	return dto.WishlistResponse{Items: out}
}

// SyncLinesFromRequest maps a guest cart merge request.
func SyncLinesFromRequest(req dto.SyncCartRequest) []cart.SyncLine {
	lines := make([]cart.SyncLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, cart.SyncLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return lines
}
