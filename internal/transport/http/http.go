package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/gildedcart/shop/internal/gateway/paystack"
	"github.com/gildedcart/shop/internal/service/models/cart"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/wishlist"
	checkwishlist "github.com/gildedcart/shop/internal/transport/http/v1/check_wishlist"
	claimorders "github.com/gildedcart/shop/internal/transport/http/v1/claim_orders"
	dispatchfee "github.com/gildedcart/shop/internal/transport/http/v1/dispatch_fee"
	"github.com/gildedcart/shop/internal/transport/http/v1/dto"
	getcart "github.com/gildedcart/shop/internal/transport/http/v1/get_cart"
	getwishlist "github.com/gildedcart/shop/internal/transport/http/v1/get_wishlist"
	initiatecheckout "github.com/gildedcart/shop/internal/transport/http/v1/initiate_checkout"
	listorders "github.com/gildedcart/shop/internal/transport/http/v1/list_orders"
	orderstatus "github.com/gildedcart/shop/internal/transport/http/v1/order_status"
	paystackcallback "github.com/gildedcart/shop/internal/transport/http/v1/paystack_callback"
	synccart "github.com/gildedcart/shop/internal/transport/http/v1/sync_cart"
	syncwishlist "github.com/gildedcart/shop/internal/transport/http/v1/sync_wishlist"
	togglewishlist "github.com/gildedcart/shop/internal/transport/http/v1/toggle_wishlist"
	whatsapporder "github.com/gildedcart/shop/internal/transport/http/v1/whatsapp_order"
	"github.com/gildedcart/shop/pkg/http/middleware/trace"
	"github.com/gildedcart/shop/pkg/logger"
)

type checkoutService interface {
	InitiatePaystack(ctx context.Context, payload checkout.Payload) (*paystack.Authorization, error)
	HandlePaystackCallback(ctx context.Context, reference string) (*order.Order, error)
	CreateWhatsAppOrder(ctx context.Context, payload checkout.Payload) (*order.Order, error)
}

type cartService interface {
	Sync(ctx context.Context, userID int64, syncToken string, lines []cart.SyncLine) error
	List(ctx context.Context, userID int64) ([]cart.Line, error)
}

type wishlistService interface {
	Toggle(ctx context.Context, userID, productID int64) (bool, error)
	Sync(ctx context.Context, userID int64, productIDs []int64) error
	List(ctx context.Context, userID int64) ([]wishlist.Item, error)
	Check(ctx context.Context, userID int64, productIDs []int64) ([]int64, error)
}

type orderService interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id int64, next order.Status) (*order.Order, error)
	ClaimGuestOrders(ctx context.Context, userID int64, email string) (int64, error)
}

type dispatchService interface {
	QuoteFee(ctx context.Context, stateName, cityName string) (int64, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	validate *validatorv10.Validate

	checkout checkoutService
	cart     cartService
	wishlist wishlistService
	orders   orderService
	dispatch dispatchService
}

func NewHTTPTransport(
	checkout checkoutService,
	cart cartService,
	wishlist wishlistService,
	orders orderService,
	dispatch dispatchService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		validate: dto.NewValidator(),
		checkout: checkout,
		cart:     cart,
		wishlist: wishlist,
		orders:   orders,
		dispatch: dispatch,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/checkout/paystack/initiate", h.initiateCheckout)
		r.Get("/checkout/paystack/callback", h.paystackCallback)
		r.Post("/checkout/whatsapp", h.whatsappOrder)

		r.Post("/cart/sync", h.syncCart)
		r.Get("/cart", h.getCart)

		r.Get("/wishlist", h.getWishlist)
		r.Post("/wishlist/check", h.checkWishlist)
		r.Post("/wishlist/toggle", h.toggleWishlist)
		r.Post("/wishlist/sync", h.syncWishlist)

		r.Get("/dispatch-fee", h.dispatchFee)

		r.Get("/orders", h.listOrders)
		r.Post("/orders/claim", h.claimOrders)
		r.Patch("/orders/{id}/status", h.updateOrderStatus)
	})
}

func (h *HTTPTransport) initiateCheckout(w http.ResponseWriter, r *http.Request) {
	initiatecheckout.InitiateCheckout(w, r, h.checkout, h.validate)
}

func (h *HTTPTransport) paystackCallback(w http.ResponseWriter, r *http.Request) {
	paystackcallback.PaystackCallback(w, r, h.checkout)
}

func (h *HTTPTransport) whatsappOrder(w http.ResponseWriter, r *http.Request) {
	whatsapporder.CreateWhatsAppOrder(w, r, h.checkout, h.validate)
}

func (h *HTTPTransport) syncCart(w http.ResponseWriter, r *http.Request) {
	synccart.SyncCart(w, r, h.cart, h.validate)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	getcart.GetCart(w, r, h.cart)
}

func (h *HTTPTransport) getWishlist(w http.ResponseWriter, r *http.Request) {
	getwishlist.GetWishlist(w, r, h.wishlist)
}

func (h *HTTPTransport) checkWishlist(w http.ResponseWriter, r *http.Request) {
	checkwishlist.CheckWishlist(w, r, h.wishlist, h.validate)
}

func (h *HTTPTransport) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	togglewishlist.ToggleWishlist(w, r, h.wishlist, h.validate)
}

func (h *HTTPTransport) syncWishlist(w http.ResponseWriter, r *http.Request) {
	syncwishlist.SyncWishlist(w, r, h.wishlist, h.validate)
}

func (h *HTTPTransport) dispatchFee(w http.ResponseWriter, r *http.Request) {
	dispatchfee.DispatchFee(w, r, h.dispatch)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) claimOrders(w http.ResponseWriter, r *http.Request) {
	claimorders.ClaimOrders(w, r, h.orders, h.validate)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderstatus.UpdateOrderStatus(w, r, h.orders, h.validate)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
