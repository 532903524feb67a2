// Package payments talks to the Stripe-compatible checkout provider: it
// creates hosted checkout sessions, mints one-time prices for product
// references, and verifies incoming webhook events.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LineItem is the provider-facing projection of a cart line. Exactly one of
// Price or PriceData is set.
type LineItem struct {
	Price     string     `json:"price,omitempty"`
	PriceData *PriceData `json:"price_data,omitempty"`
	Quantity  int        `json:"quantity"`
}

type PriceData struct {
	Currency    string      `json:"currency"`
	UnitAmount  int64       `json:"unit_amount"`
	ProductData ProductData `json:"product_data"`
}

type ProductData struct {
	Name string `json:"name"`
}

type SessionRequest struct {
	Items      []LineItem        `json:"items"`
	SuccessURL string            `json:"success_url,omitempty"`
	CancelURL  string            `json:"cancel_url,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Session is the opaque handle returned by the provider. The payment outcome
// itself arrives later via webhook.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (Session, error)
	CreatePrice(ctx context.Context, productRef string, unitAmount int64, currency string) (string, error)
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req SessionRequest) (Session, error) {
	var session Session
	if err := c.post(ctx, "/create-checkout-session", req, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (c *Client) CreatePrice(ctx context.Context, productRef string, unitAmount int64, currency string) (string, error) {
	body := map[string]interface{}{
		"product":     productRef,
		"unit_amount": unitAmount,
		"currency":    currency,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/prices", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("payment provider error (%d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
	}
	return nil
}
