package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"oldbaku_hotel/internal/domain"
)

// signatureTolerance bounds how stale a signed timestamp may be.
const signatureTolerance = 5 * time.Minute

// ConstructEvent verifies the Stripe-Signature header against the raw
// payload and decodes the event. Nothing in the payload is trusted
// before the signature checks out.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (domain.PaymentEvent, error) {
	if err := verifySignature(payload, sigHeader, c.webhookSecret, time.Now()); err != nil {
		return domain.PaymentEvent{}, err
	}

	var ev struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				Metadata map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("decode event: %w", err)
	}
	return domain.PaymentEvent{
		Type:      ev.Type,
		BookingID: ev.Data.Object.Metadata["booking_id"],
	}, nil
}

// verifySignature checks the "t=...,v1=..." scheme: HMAC-SHA256 over
// "<t>.<payload>" with the webhook secret, constant-time compare, and a
// freshness window on t.
func verifySignature(payload []byte, header, secret string, now time.Time) error {
	if secret == "" || header == "" {
		return domain.ErrInvalidSignature
	}

	var ts int64 = -1
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return domain.ErrInvalidSignature
			}
			ts = n
		case "v1":
			candidates = append(candidates, v)
		}
	}
	if ts < 0 || len(candidates) == 0 {
		return domain.ErrInvalidSignature
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	want := mac.Sum(nil)

	for _, cand := range candidates {
		got, err := hex.DecodeString(cand)
		if err != nil {
			continue
		}
		if hmac.Equal(want, got) {
			return nil
		}
	}
	return domain.ErrInvalidSignature
}
