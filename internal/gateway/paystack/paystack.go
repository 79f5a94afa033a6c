package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gildedcart/shop/internal/service/models/checkout"
	"github.com/spf13/viper"
)

// StatusSuccess is the gateway's sentinel for a completed payment. Any
// other verify status means the payment must be treated as failed or
// incomplete.
const StatusSuccess = "success"

// Metadata is threaded through the gateway unchanged between initialize
// and verify. It carries the fallback copy of the purchase intent.
type Metadata struct {
	OrderData *checkout.Payload `json:"order_data,omitempty"`
	UserID    *int64            `json:"user_id,omitempty"`
}

// Authorization is the result of initializing a transaction.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction is the gateway's record of a payment, as returned by verify.
type Transaction struct {
	Status    string   `json:"status"`
	Reference string   `json:"reference"`
	Amount    int64    `json:"amount"`
	Metadata  Metadata `json:"metadata"`
}

// Succeeded reports whether the gateway considers the payment captured.
func (t *Transaction) Succeeded() bool {
	return t.Status == StatusSuccess
}

// envelope is the gateway's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client wraps the hosted gateway's transaction API. Calls carry a bounded
// timeout; no retries are performed, failures propagate to the caller.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient creates a gateway client from configuration.
func NewClient() *Client {
	timeout := viper.GetDuration("paystack.timeout")
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return New(
		viper.GetString("paystack.base_url"),
		os.Getenv("PAYSTACK_SECRET_KEY"),
		timeout,
	)
}

// New creates a gateway client against an explicit endpoint.
func New(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// InitializeTransaction starts a hosted payment and returns the
// authorization URL the customer is redirected to. amountKobo is in the
// gateway's minor currency unit.
func (c *Client) InitializeTransaction(
	ctx context.Context,
	email string,
	amountKobo int64,
	callbackURL string,
	metadata Metadata,
) (*Authorization, error) {
	body, err := json.Marshal(map[string]any{
		"email":        email,
		"amount":       amountKobo,
		"callback_url": callbackURL,
		"metadata":     metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	var auth Authorization
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &auth); err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}

	return &auth, nil
}

// VerifyTransaction fetches the gateway's record of a transaction by
// reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &txn); err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}

	return &txn, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, env.Message)
	}

	if !env.Status {
		return fmt.Errorf("gateway rejected request: %s", env.Message)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode gateway data: %w", err)
	}

	return nil
}
