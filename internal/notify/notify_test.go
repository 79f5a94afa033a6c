package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedcart/shop/internal/service/models/mail"
	"github.com/gildedcart/shop/internal/service/models/order"
	"github.com/gildedcart/shop/internal/service/models/outbox"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	inserted  []outbox.Message
	insertErr error
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, msg)
	return nil
}

func (f *fakeOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.Message, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func (f *fakeOutboxRepo) Delete(context.Context, int64) error { return nil }

func newTestDispatcher(repo *fakeOutboxRepo) *Dispatcher {
	return &Dispatcher{
		outboxRepo: repo,
		queueName:  "mail.send",
		adminEmail: "orders@example.com",
		maxRetries: 5,
	}
}

func testOrder() order.Order {
	return order.Order{
		ID:        1,
		Reference: "WA-AAAAAAAAAA",
		Name:      "Ada Obi",
		Email:     "ada@example.com",
		Status:    order.StatusPending,
	}
}

func TestOrderCreatedEnqueuesCustomerAndAdminMail(t *testing.T) {
	repo := &fakeOutboxRepo{}
	d := newTestDispatcher(repo)

	d.OrderCreated(context.Background(), testOrder())

	require.Len(t, repo.inserted, 2)

	templates := make(map[mail.Template]string)
	for _, msg := range repo.inserted {
		var m mail.Message
		require.NoError(t, json.Unmarshal(msg.Payload, &m))
		templates[m.Template] = m.To
		assert.Equal(t, "mail.send", msg.QueueName)
	}

	assert.Equal(t, "ada@example.com", templates[mail.TemplateOrderConfirmation])
	assert.Equal(t, "orders@example.com", templates[mail.TemplateNewOrderAdmin])
}

func TestOrderCreatedWithoutAdminEmail(t *testing.T) {
	repo := &fakeOutboxRepo{}
	d := newTestDispatcher(repo)
	d.adminEmail = ""

	d.OrderCreated(context.Background(), testOrder())

	require.Len(t, repo.inserted, 1)
}

func TestOrderCreatedSwallowsFailures(t *testing.T) {
	repo := &fakeOutboxRepo{insertErr: errors.New("outbox unavailable")}
	d := newTestDispatcher(repo)

	// Must not panic or propagate; the order is already committed.
	d.OrderCreated(context.Background(), testOrder())

	assert.Empty(t, repo.inserted)
}
