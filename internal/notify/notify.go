package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	ioutbox "github.com/gildedcart/shop/internal/dal/interfaces/outbox"
	"github.com/gildedcart/shop/internal/service/models/mail"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Dispatcher queues the customer confirmation and the operator
// notification for a committed order. Each send is independent and
// strictly best-effort: failures are logged and never propagated, the
// order is already durable by the time this runs.
type Dispatcher struct {
	outboxRepo ioutbox.Repository
	queueName  string
	adminEmail string
	maxRetries int
}

// NewDispatcher creates a Dispatcher writing to the mail outbox.
func NewDispatcher(outboxRepo ioutbox.Repository) *Dispatcher {
	maxRetries := viper.GetInt("mail.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &Dispatcher{
		outboxRepo: outboxRepo,
		queueName:  viper.GetString("rabbitmq.mail.queue"),
		adminEmail: viper.GetString("mail.admin_email"),
		maxRetries: maxRetries,
	}
}

// OrderCreated enqueues the confirmation and operator mails for an order.
func (d *Dispatcher) OrderCreated(ctx context.Context, o order.Order) {
	messages := []mail.Message{
		{
			To:       o.Email,
			Subject:  "Your order " + o.Reference,
			Template: mail.TemplateOrderConfirmation,
			Model:    orderModel(o),
		},
	}

	if d.adminEmail != "" {
		messages = append(messages, mail.Message{
			To:       d.adminEmail,
			Subject:  "New order " + o.Reference,
			Template: mail.TemplateNewOrderAdmin,
			Model:    orderModel(o),
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	for _, msg := range messages {
		msg := msg
		g.Go(func() error {
			return d.enqueue(ctx, msg)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Failed to enqueue order notification",
			"order_id", o.ID,
			"reference", o.Reference,
			"error", err,
		)
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, msg mail.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	now := time.Now()

	return d.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   d.queueName,
		RoutingKey:  d.queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  d.maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

func orderModel(o order.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, map[string]any{
			"product_id":      item.ProductID,
			"quantity":        item.Quantity,
			"unit_price_kobo": item.UnitPriceKobo,
		})
	}

	return map[string]any{
		"reference":       o.Reference,
		"name":            o.Name,
		"email":           o.Email,
		"subtotal_kobo":   o.SubtotalKobo,
		"total_kobo":      o.TotalKobo,
		"status":          string(o.Status),
		"payment_method":  string(o.PaymentMethod),
		"delivery_method": string(o.DeliveryMethod),
		"items":           items,
	}
}
