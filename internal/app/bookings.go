package app

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"oldbaku_hotel/internal/domain"
)

const (
	dateLayout    = "2006-01-02"
	notifyTimeout = 20 * time.Second
	maxNotifiers  = 4 // concurrent SMTP sends
)

// BookingService validates and persists booking requests. The owner
// notification is fired off the request path: its failure is logged and
// never undoes the persisted booking.
type BookingService struct {
	store    domain.Store
	catalog  *CatalogService
	notifier domain.Notifier
	metrics  domain.Metrics
	sem      *semaphore.Weighted
	now      func() time.Time
}

func NewBookingService(store domain.Store, catalog *CatalogService, notifier domain.Notifier, metrics domain.Metrics) *BookingService {
	return &BookingService{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		metrics:  metrics,
		sem:      semaphore.NewWeighted(maxNotifiers),
		now:      time.Now,
	}
}

func (s *BookingService) count(event string) {
	if s.metrics != nil {
		s.metrics.BookingEvent(event)
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, in domain.BookingInput) (domain.Booking, error) {
	if in.Name == "" || in.Email == "" || in.Checkin == "" || in.Checkout == "" || in.Room == "" {
		s.count("rejected")
		return domain.Booking{}, domain.InvalidRequest("missing field")
	}
	checkin, err1 := time.Parse(dateLayout, in.Checkin)
	checkout, err2 := time.Parse(dateLayout, in.Checkout)
	if err1 != nil || err2 != nil || !checkout.After(checkin) {
		s.count("rejected")
		return domain.Booking{}, domain.InvalidRequest("date range invalid")
	}

	guests := in.Guests
	if guests <= 0 {
		guests = 1
	}

	b := domain.Booking{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Checkin:   in.Checkin,
		Checkout:  in.Checkout,
		Room:      s.canonicalRoom(ctx, in.Room),
		Guests:    guests,
		Paid:      false,
	}

	if err := s.store.AppendBooking(ctx, b); err != nil {
		return domain.Booking{}, err
	}
	s.count("created")
	s.dispatchNotify(b)
	return b, nil
}

// canonicalRoom stores the room id when the submitted value resolves to
// a known room (by id or by any localized title). Anything else is kept
// verbatim; referential integrity is not enforced.
func (s *BookingService) canonicalRoom(ctx context.Context, raw string) string {
	if s.catalog == nil {
		return raw
	}
	rooms, err := s.catalog.ListRooms(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("room canonicalization skipped")
		return raw
	}
	for _, r := range rooms {
		id := strconv.FormatInt(r.ID, 10)
		if raw == id {
			return id
		}
		for _, title := range r.Title {
			if raw == title {
				return id
			}
		}
	}
	return raw
}

func (s *BookingService) dispatchNotify(b domain.Booking) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.sem.Acquire(ctx, 1); err != nil {
			s.count("notify_failed")
			log.Warn().Str("booking", b.ID).Err(err).Msg("notification queue full")
			return
		}
		defer s.sem.Release(1)
		if err := s.notifier.Notify(ctx, b); err != nil {
			s.count("notify_failed")
			log.Warn().Str("booking", b.ID).Err(err).Msg("owner notification failed")
			return
		}
		log.Info().Str("booking", b.ID).Msg("owner notified")
	}()
}
