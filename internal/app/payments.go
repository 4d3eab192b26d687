package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"oldbaku_hotel/internal/domain"
)

const checkoutCompleted = "checkout.session.completed"

// PaymentService creates hosted checkout sessions and reconciles
// provider webhook events back onto bookings. A nil provider means the
// integration is not configured.
type PaymentService struct {
	provider domain.PaymentProvider
	catalog  *CatalogService
	store    domain.Store
	metrics  domain.Metrics
	origin   string // client origin for the success/cancel redirects
}

func NewPaymentService(p domain.PaymentProvider, catalog *CatalogService, store domain.Store, origin string, metrics domain.Metrics) *PaymentService {
	return &PaymentService{provider: p, catalog: catalog, store: store, origin: origin, metrics: metrics}
}

func (s *PaymentService) count(event string) {
	if s.metrics != nil {
		s.metrics.PaymentEvent(event)
	}
}

// CreateCheckoutSession prices nights×room.Price and returns the hosted
// checkout redirect URL. The booking id travels in session metadata so
// the webhook can find its way back; an empty id keeps the legacy
// fire-and-forget path working, at the cost of an unreconcilable event.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, roomID, nights int64, email, bookingID string) (string, error) {
	if s.provider == nil {
		return "", domain.ErrNotConfigured
	}
	room, err := s.catalog.GetRoom(ctx, roomID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && room.Price == nil) {
		return "", domain.InvalidRequest("room or price missing")
	}
	if err != nil {
		return "", err
	}
	if nights <= 0 {
		nights = 1
	}
	return s.provider.CreateCheckoutSession(ctx, domain.CheckoutParams{
		ProductName:   fmt.Sprintf("Бронирование номера #%d", roomID),
		Currency:      "azn",
		UnitAmount:    *room.Price * 100,
		Quantity:      nights,
		CustomerEmail: email,
		BookingID:     bookingID,
		SuccessURL:    s.origin + "/booking_contacts.html?status=success",
		CancelURL:     s.origin + "/booking_contacts.html?status=cancel",
	})
}

// HandlePaymentEvent verifies and reconciles one webhook delivery.
// Signature failure rejects before any state is touched. A completed
// checkout marks its booking paid; an unknown or missing booking id is
// acknowledged and logged so the provider stops redelivering.
func (s *PaymentService) HandlePaymentEvent(ctx context.Context, payload []byte, sigHeader string) error {
	if s.provider == nil {
		return domain.ErrNotConfigured
	}
	ev, err := s.provider.ConstructEvent(payload, sigHeader)
	if err != nil {
		s.count("rejected")
		return err
	}
	s.count("verified")
	if ev.Type != checkoutCompleted {
		return nil
	}
	if ev.BookingID == "" {
		s.count("orphaned")
		log.Warn().Msg("checkout completed without booking metadata")
		return nil
	}
	found, err := s.store.MarkBookingPaid(ctx, ev.BookingID)
	if err != nil {
		return err
	}
	if !found {
		s.count("orphaned")
		log.Warn().Str("booking", ev.BookingID).Msg("paid booking not in store")
		return nil
	}
	s.count("reconciled")
	log.Info().Str("booking", ev.BookingID).Msg("booking reconciled as paid")
	return nil
}
