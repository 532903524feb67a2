package payments

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func signedHeader(payload []byte, ts int64) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(payload, ts, testSecret))
}

func TestParseEventValidSignature(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"payment_intent": "pi_1",
			"customer_email": "jo@example.com",
			"amount_total": 4596,
			"currency": "gbp",
			"metadata": {"userId": "42"}
		}}
	}`)
	ts := time.Now().Unix()

	event, err := ParseEvent(payload, signedHeader(payload, ts), testSecret, 5*time.Minute)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}

	if event.Type != EventCheckoutSessionCompleted {
		t.Errorf("Type = %q", event.Type)
	}

	session, err := event.CheckoutSession()
	if err != nil {
		t.Fatalf("CheckoutSession: %v", err)
	}
	if session.CustomerEmail != "jo@example.com" {
		t.Errorf("CustomerEmail = %q", session.CustomerEmail)
	}
	if session.AmountTotal != 4596 {
		t.Errorf("AmountTotal = %d", session.AmountTotal)
	}
	if session.Metadata["userId"] != "42" {
		t.Errorf("metadata userId = %q", session.Metadata["userId"])
	}
}

func TestParseEventRejectsBadSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	ts := time.Now().Unix()

	header := fmt.Sprintf("t=%d,v1=deadbeef", ts)
	if _, err := ParseEvent(payload, header, testSecret, 5*time.Minute); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestParseEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	ts := time.Now().Unix()
	header := signedHeader(payload, ts)

	tampered := []byte(`{"id":"evt_1","type":"payment_intent.payment_failed"}`)
	if _, err := ParseEvent(tampered, header, testSecret, 5*time.Minute); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestParseEventRejectsOldTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	ts := time.Now().Add(-10 * time.Minute).Unix()

	if _, err := ParseEvent(payload, signedHeader(payload, ts), testSecret, 5*time.Minute); !errors.Is(err, ErrSignatureExpired) {
		t.Errorf("err = %v, want ErrSignatureExpired", err)
	}
}

func TestParseEventRejectsMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{"", "t=abc,v1=def", "v1=deadbeef", "t=123"} {
		if _, err := ParseEvent(payload, header, testSecret, 5*time.Minute); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("header %q: err = %v, want ErrInvalidSignature", header, err)
		}
	}
}
