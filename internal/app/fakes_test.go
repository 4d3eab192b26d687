package app_test

import (
	"context"
	"sync"

	"oldbaku_hotel/internal/domain"
)

// ---- fakes shared by the app tests ----

type fakeStore struct {
	mu        sync.Mutex
	rooms     []domain.Room
	roomsErr  error
	bookings  []domain.Booking
	appendErr error
	markErr   error
}

func (f *fakeStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roomsErr != nil {
		return nil, f.roomsErr
	}
	out := make([]domain.Room, len(f.rooms))
	copy(out, f.rooms)
	return out, nil
}

func (f *fakeStore) SaveRooms(ctx context.Context, rooms []domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = rooms
	return nil
}

func (f *fakeStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeStore) AppendBooking(ctx context.Context, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeStore) MarkBookingPaid(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Paid = true
			return true, nil
		}
	}
	return false, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]domain.Room
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]domain.Room); ok {
		*d = v
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]domain.Room{}
	}
	if rooms, ok := v.([]domain.Room); ok {
		c.store[key] = rooms
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeNotifier struct {
	err   error
	calls chan domain.Booking
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan domain.Booking, 8)}
}

func (n *fakeNotifier) Notify(ctx context.Context, b domain.Booking) error {
	n.calls <- b
	return n.err
}

type fakeMetrics struct {
	mu       sync.Mutex
	bookings []string
	payments []string
}

func (m *fakeMetrics) BookingEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, event)
}

func (m *fakeMetrics) PaymentEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, event)
}

func (m *fakeMetrics) bookingEvents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.bookings))
	copy(out, m.bookings)
	return out
}

func (m *fakeMetrics) paymentEvents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.payments))
	copy(out, m.payments)
	return out
}

type fakeProvider struct {
	url        string
	createErr  error
	last       domain.CheckoutParams
	event      domain.PaymentEvent
	eventErr   error
	lastHeader string
}

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, params domain.CheckoutParams) (string, error) {
	p.last = params
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.url, nil
}

func (p *fakeProvider) ConstructEvent(payload []byte, sigHeader string) (domain.PaymentEvent, error) {
	p.lastHeader = sigHeader
	if p.eventErr != nil {
		return domain.PaymentEvent{}, p.eventErr
	}
	return p.event, nil
}

func pint64(v int64) *int64     { return &v }
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }
