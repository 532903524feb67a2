package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentFailed            = "payment_intent.payment_failed"
)

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrSignatureExpired = errors.New("webhook signature timestamp outside tolerance")
)

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSessionCompleted is the event payload for a finished checkout.
type CheckoutSessionCompleted struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	CustomerEmail string            `json:"customer_email"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutSession decodes the event's data object as a completed checkout
// session.
func (e Event) CheckoutSession() (CheckoutSessionCompleted, error) {
	var session CheckoutSessionCompleted
	if err := json.Unmarshal(e.Data.Object, &session); err != nil {
		return CheckoutSessionCompleted{}, fmt.Errorf("decode checkout session: %w", err)
	}
	return session, nil
}

// ParseEvent verifies a "t=<unix>,v1=<hex hmac-sha256>" signature header over
// "<t>.<payload>" and decodes the event. Events older than tolerance are
// rejected to stop replays.
func ParseEvent(payload []byte, sigHeader, secret string, tolerance time.Duration) (Event, error) {
	ts, signature, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return Event{}, err
	}

	age := time.Since(time.Unix(ts, 0))
	if age > tolerance || age < -tolerance {
		return Event{}, ErrSignatureExpired
	}

	expected := ComputeSignature(payload, ts, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return Event{}, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("decode webhook payload: %w", err)
	}
	return event, nil
}

func ComputeSignature(payload []byte, timestamp int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignatureHeader(header string) (int64, string, error) {
	var ts int64
	var signature string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			parsed, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, "", ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			signature = kv[1]
		}
	}

	if ts == 0 || signature == "" {
		return 0, "", ErrInvalidSignature
	}
	return ts, signature, nil
}
