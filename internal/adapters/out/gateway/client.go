// Package gateway is the HTTP client for the card payment provider. It only opens
// checkouts; completion arrives through the signed client callback.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	Currency       = "INR"
	defaultTimeout = 10 * time.Second
)

var _ ports.PaymentGateway = (*Client)(nil)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

func NewClient(baseURL, keyID, keySecret string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if keyID == "" {
		return nil, errs.NewValueIsRequiredError("keyID")
	}
	if keySecret == "" {
		return nil, errs.NewValueIsRequiredError("keySecret")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "payment_gateway")
	return c, nil
}

func (c *Client) KeyID() string { return c.keyID }

type createOrderRequest struct {
	// Amount is in minor units.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a checkout for amount. The call is made once; a failure leaves no
// state behind on our side.
func (c *Client) CreateOrder(ctx context.Context, amount kernel.Money, receipt string) (ports.GatewayOrder, error) {
	if amount.IsZero() {
		return ports.GatewayOrder{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0.01", "unbounded")
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount.MinorUnits(),
		Currency: Currency,
		Receipt:  receipt,
	})
	if err != nil {
		return ports.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return ports.GatewayOrder{}, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var e errorResponse
		_ = json.Unmarshal(raw, &e)
		c.logger.WarnContext(ctx, "checkout rejected",
			"status", resp.StatusCode, "code", e.Error.Code, "receipt", receipt)
		return ports.GatewayOrder{}, fmt.Errorf("%w: status %d: %s",
			ErrGatewayUnavailable, resp.StatusCode, e.Error.Description)
	}

	var out createOrderResponse
	if err = json.Unmarshal(raw, &out); err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("decode gateway order: %w", err)
	}
	if out.ID == "" {
		return ports.GatewayOrder{}, fmt.Errorf("%w: response without order id", ErrGatewayUnavailable)
	}

	charged, err := kernel.NewMoney(decimal.NewFromInt(out.Amount).Shift(-kernel.MoneyScale))
	if err != nil {
		return ports.GatewayOrder{}, err
	}
	if !charged.Equal(amount) {
		return ports.GatewayOrder{}, errs.NewVerificationFailedErrorWithCause("gateway order amount",
			fmt.Errorf("requested %s, gateway recorded %s", amount, charged))
	}

	c.logger.InfoContext(ctx, "checkout opened", "gateway_order_id", out.ID, "receipt", receipt)
	return ports.GatewayOrder{ID: out.ID, Amount: charged, Currency: out.Currency}, nil
}
