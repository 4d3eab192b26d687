package domain

import "context"

// Store persists the two flat collections. Mutating methods are
// read-modify-write over the whole collection and must be serialized
// per collection by the implementation.
type Store interface {
	ListRooms(ctx context.Context) ([]Room, error)
	SaveRooms(ctx context.Context, rooms []Room) error

	// ListBookings treats a never-created collection as empty.
	ListBookings(ctx context.Context) ([]Booking, error)
	AppendBooking(ctx context.Context, b Booking) error
	// MarkBookingPaid flips Paid on the matching booking. Returns false
	// when no booking has that id; repeated calls are no-ops.
	MarkBookingPaid(ctx context.Context, id string) (bool, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Notifier informs the owner that a booking happened. Best-effort: the
// caller logs failures and never propagates them.
type Notifier interface {
	Notify(ctx context.Context, b Booking) error
}

// Metrics counts business events. The observability adapter implements
// it; a nil Metrics disables counting.
type Metrics interface {
	BookingEvent(event string)
	PaymentEvent(event string)
}

type PaymentProvider interface {
	// CreateCheckoutSession returns the hosted checkout redirect URL.
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
	// ConstructEvent verifies the webhook signature over the raw payload
	// and decodes the event. Fails with ErrInvalidSignature before any
	// payload field is trusted.
	ConstructEvent(payload []byte, sigHeader string) (PaymentEvent, error)
}

type CheckoutParams struct {
	ProductName   string
	Currency      string
	UnitAmount    int64 // minor units
	Quantity      int64 // nights
	CustomerEmail string
	BookingID     string // stamped into session metadata; empty omits it
	SuccessURL    string
	CancelURL     string
}

type PaymentEvent struct {
	Type      string
	BookingID string // from session metadata, empty when absent
}
