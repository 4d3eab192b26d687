package stripe_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"oldbaku_hotel/internal/adapters/stripe"
	"oldbaku_hotel/internal/domain"
)

const webhookSecret = "whsec_test_secret"

func signedHeader(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedPayload(bookingID string) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1","metadata":{"booking_id":%q}}}}`,
		bookingID,
	))
}

func newClient(t *testing.T) *stripe.Client {
	t.Helper()
	cl, err := stripe.New("sk_test", webhookSecret, 5)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return cl
}

func TestConstructEvent_Valid(t *testing.T) {
	cl := newClient(t)
	payload := completedPayload("b-42")

	ev, err := cl.ConstructEvent(payload, signedHeader(t, payload, webhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ev.Type != "checkout.session.completed" || ev.BookingID != "b-42" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestConstructEvent_NoMetadata(t *testing.T) {
	cl := newClient(t)
	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	ev, err := cl.ConstructEvent(payload, signedHeader(t, payload, webhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ev.BookingID != "" {
		t.Fatalf("expected empty booking id, got %q", ev.BookingID)
	}
}

func TestConstructEvent_RejectsBadSignatures(t *testing.T) {
	cl := newClient(t)
	payload := completedPayload("b-1")

	cases := map[string]string{
		"empty header":     "",
		"garbage":          "not-a-signature",
		"wrong secret":     signedHeader(t, payload, "whsec_other", time.Now()),
		"stale timestamp":  signedHeader(t, payload, webhookSecret, time.Now().Add(-time.Hour)),
		"future timestamp": signedHeader(t, payload, webhookSecret, time.Now().Add(time.Hour)),
		"no v1":            fmt.Sprintf("t=%d", time.Now().Unix()),
	}
	for name, header := range cases {
		if _, err := cl.ConstructEvent(payload, header); !errors.Is(err, domain.ErrInvalidSignature) {
			t.Fatalf("%s: expected ErrInvalidSignature, got %v", name, err)
		}
	}

	// tampered payload under a once-valid header
	header := signedHeader(t, payload, webhookSecret, time.Now())
	tampered := completedPayload("b-other")
	if _, err := cl.ConstructEvent(tampered, header); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("tampered payload: expected ErrInvalidSignature, got %v", err)
	}
}
