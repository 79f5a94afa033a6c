package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	icart "github.com/gildedcart/shop/internal/dal/interfaces/cart"
	idiscount "github.com/gildedcart/shop/internal/dal/interfaces/discount"
	igeo "github.com/gildedcart/shop/internal/dal/interfaces/geo"
	iorder "github.com/gildedcart/shop/internal/dal/interfaces/order"
	iorderitem "github.com/gildedcart/shop/internal/dal/interfaces/orderitem"
	ipendingcheckout "github.com/gildedcart/shop/internal/dal/interfaces/pendingcheckout"
	iuser "github.com/gildedcart/shop/internal/dal/interfaces/user"
	iuserprofile "github.com/gildedcart/shop/internal/dal/interfaces/userprofile"
	"github.com/gildedcart/shop/internal/dal/postgres"
	"github.com/gildedcart/shop/internal/dal/uow"
	"github.com/gildedcart/shop/internal/gateway/paystack"
	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/spf13/viper"
)

var (
	// ErrReferenceMissing is returned when a gateway callback arrives
	// without a reference.
	ErrReferenceMissing = errors.New("payment reference missing")

	// ErrVerificationFailed is returned when the gateway reports any
	// status other than success. No order is created.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrOrderDataMissing is returned when neither the pending checkout
	// record nor the gateway metadata carries the purchase intent. Distinct
	// from ErrVerificationFailed: the payment may well have succeeded.
	ErrOrderDataMissing = errors.New("order data not found")

	// ErrOrderNotRecorded wraps assembler failures on the gateway path,
	// where funds are already captured. Requires manual reconciliation.
	ErrOrderNotRecorded = errors.New("payment captured, order not recorded")
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.PostgresRepository
	OrderItemRepository() iorderitem.PostgresRepository
	UserRepository() iuser.PostgresRepository
	UserProfileRepository() iuserprofile.PostgresRepository
}

type gateway interface {
	InitializeTransaction(ctx context.Context, email string, amountKobo int64, callbackURL string, metadata paystack.Metadata) (*paystack.Authorization, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.Transaction, error)
}

type notifier interface {
	OrderCreated(ctx context.Context, o order.Order)
}

// CheckoutService orchestrates order creation for both payment paths.
type CheckoutService struct {
	newUOW       func() unitOfWork
	gateway      gateway
	notifier     notifier
	geoRepo      igeo.PostgresRepository
	discountRepo idiscount.PostgresRepository
	pendingRepo  ipendingcheckout.PostgresRepository
	cartRepo     icart.PostgresRepository
	newReference func() string
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	s := &CheckoutService{
		newReference: NewWhatsAppReference,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the repositories and unit of work onto a
// Postgres client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CheckoutService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(g gateway) option {
	return func(s *CheckoutService) {
		s.gateway = g
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *CheckoutService) {
		s.notifier = n
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithGeoRepository(r igeo.PostgresRepository) option {
	return func(s *CheckoutService) {
		s.geoRepo = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithDiscountRepository(r idiscount.PostgresRepository) option {
	return func(s *CheckoutService) {
		s.discountRepo = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPendingCheckoutRepository(r ipendingcheckout.PostgresRepository) option {
	return func(s *CheckoutService) {
		s.pendingRepo = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(r icart.PostgresRepository) option {
	return func(s *CheckoutService) {
		s.cartRepo = r
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *CheckoutService) {
		s.newUOW = f
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithReferenceGenerator(f func() string) option {
	return func(s *CheckoutService) {
		s.newReference = f
	}
}

// InitiatePaystack starts the gateway payment flow. The purchase intent is
// persisted keyed by the gateway reference and additionally threaded
// through the gateway as metadata, so verification can recover it either
// way. No order row is written here.
func (s *CheckoutService) InitiatePaystack(
	ctx context.Context,
	payload checkout.Payload,
) (*paystack.Authorization, error) {
	auth, err := s.gateway.InitializeTransaction(
		ctx,
		payload.Email,
		payload.TotalKobo,
		viper.GetString("paystack.callback_url"),
		paystack.Metadata{
			OrderData: &payload,
			UserID:    payload.UserID,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway transaction: %w", err)
	}

	if err := s.pendingRepo.Insert(ctx, checkout.PendingCheckout{
		Reference: auth.Reference,
		Payload:   payload,
		CreatedAt: timeNow(),
	}); err != nil {
		// The customer has not been redirected yet, so failing here loses
		// nothing; a retry mints a fresh reference.
		return nil, fmt.Errorf("failed to persist pending checkout: %w", err)
	}

	return auth, nil
}

// HandlePaystackCallback verifies a gateway callback and commits the order.
// A replayed reference returns the already created order without
// re-notifying.
func (s *CheckoutService) HandlePaystackCallback(
	ctx context.Context,
	reference string,
) (*order.Order, error) {
	if reference == "" {
		return nil, ErrReferenceMissing
	}

	txn, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		// Payment status unknown: the caller must not guess, no order is
		// created.
		return nil, fmt.Errorf("failed to verify gateway transaction: %w", err)
	}

	if !txn.Succeeded() {
		return nil, fmt.Errorf("%w: gateway status %q", ErrVerificationFailed, txn.Status)
	}

	payload, err := s.recoverPayload(ctx, reference, txn)
	if err != nil {
		return nil, err
	}

	created, err := s.assemble(ctx, *payload, order.PaymentMethodPaystack, reference)
	if errors.Is(err, order.ErrDuplicateReference) {
		existing, findErr := s.newUOW().OrderRepository().FindByReference(ctx, reference)
		if findErr != nil || existing == nil {
			return nil, fmt.Errorf("reference already processed but order not found: %w", err)
		}
		slog.Info("Gateway callback replayed, order already recorded",
			"reference", reference,
			"order_id", existing.ID,
		)
		// The first callback may have died before cleanup, so the intent
		// record can still be around. Replays are its last chance to go.
		if err := s.pendingRepo.DeleteByReference(ctx, reference); err != nil {
			slog.Error("Failed to delete pending checkout", "reference", reference, "error", err)
		}
		return existing, nil
	}
	if err != nil {
		slog.Error("Order creation failed after captured payment",
			"reference", reference,
			"payment_captured", true,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrOrderNotRecorded, err)
	}

	s.notifier.OrderCreated(ctx, *created)
	s.finishCheckout(ctx, created, reference)

	return created, nil
}

// CreateWhatsAppOrder creates a manual/chat order synchronously. Payment
// confirmation happens out-of-band, so status is always pending.
func (s *CheckoutService) CreateWhatsAppOrder(
	ctx context.Context,
	payload checkout.Payload,
) (*order.Order, error) {
	reference := s.newReference()

	created, err := s.assemble(ctx, payload, order.PaymentMethodWhatsApp, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifier.OrderCreated(ctx, *created)
	s.finishCheckout(ctx, created, "")

	return created, nil
}

// recoverPayload restores the purchase intent for a verified transaction:
// the pending checkout record first, gateway metadata as fallback.
func (s *CheckoutService) recoverPayload(
	ctx context.Context,
	reference string,
	txn *paystack.Transaction,
) (*checkout.Payload, error) {
	pending, err := s.pendingRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending checkout: %w", err)
	}
	if pending != nil {
		return &pending.Payload, nil
	}

	if txn.Metadata.OrderData != nil && len(txn.Metadata.OrderData.CartItems) > 0 {
		payload := *txn.Metadata.OrderData
		if payload.UserID == nil {
			payload.UserID = txn.Metadata.UserID
		}
		return &payload, nil
	}

	return nil, ErrOrderDataMissing
}

// finishCheckout performs the best-effort cleanup after an order commit:
// clearing the requester's server cart and the pending intent record.
// Neither failure affects the committed order.
func (s *CheckoutService) finishCheckout(ctx context.Context, o *order.Order, reference string) {
	if o.UserID != nil {
		if err := s.cartRepo.ClearUser(ctx, *o.UserID); err != nil {
			slog.Error("Failed to clear cart after checkout", "user_id", *o.UserID, "error", err)
		}
	}

	if reference != "" {
		if err := s.pendingRepo.DeleteByReference(ctx, reference); err != nil {
			slog.Error("Failed to delete pending checkout", "reference", reference, "error", err)
		}
	}
}
