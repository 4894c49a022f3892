// Package payment holds the seam through which an externally captured
// payment confirmation enters the system. The gateway is consulted once, at
// order placement, and is allowed to be slow or down: any failure degrades
// to "not settled" so order creation is never blocked on it.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type IntentGateway interface {
	// IsSettled reports whether the external payment reference has already
	// been captured by the provider.
	IsSettled(ctx context.Context, ref string) (bool, error)
}

// HTTPGateway queries a payment provider over HTTP.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) IsSettled(ctx context.Context, ref string) (bool, error) {
	url := fmt.Sprintf("%s/intents/%s", g.baseURL, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("querying payment intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payment gateway returned %d", resp.StatusCode)
	}

	var body struct {
		Settled bool `json:"settled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decoding payment intent: %w", err)
	}
	return body.Settled, nil
}

// MockGateway settles every reference it is asked about. It stands in for a
// real provider in development, where the client flow marks payments as
// captured before placing the order.
type MockGateway struct{}

func (MockGateway) IsSettled(ctx context.Context, ref string) (bool, error) {
	return ref != "", nil
}
