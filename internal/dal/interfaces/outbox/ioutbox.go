package ioutbox

import (
	"context"
	"time"

	"github.com/gildedcart/shop/internal/service/models/outbox"
)

// Repository is an interface for the mail outbox repository.
type Repository interface {
	Insert(ctx context.Context, msg outbox.Message) error
	GetPendingMessages(ctx context.Context, limit int) ([]outbox.Message, error)
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
	Delete(ctx context.Context, id int64) error
}
