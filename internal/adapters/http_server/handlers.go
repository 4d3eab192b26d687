// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"oldbaku_hotel/internal/app"
	"oldbaku_hotel/internal/auth"
	"oldbaku_hotel/internal/domain"
)

const maxWebhookBody = 1 << 16 // 64 KiB, generous for a checkout event

type Handlers struct {
	Auth     *auth.Service
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Payments *app.PaymentService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/api/auth/login", h.login)
	s.mux.Get("/api/rooms", h.listRooms)
	s.mux.With(RequireOwner(h.Auth)).Put("/api/rooms/{id}", h.updateRoom)
	s.mux.Post("/api/book", h.createBooking)
	s.mux.Post("/api/create-checkout-session", h.createCheckoutSession)
	s.mux.Post("/webhook/stripe", h.stripeWebhook)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the domain taxonomy onto HTTP statuses.
// Validation messages are safe to show; anything else gets a generic one.
func writeServiceError(w http.ResponseWriter, err error) {
	var ire *domain.InvalidRequestError
	switch {
	case errors.As(err, &ire):
		writeError(w, http.StatusBadRequest, ire.Reason)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "Webhook signature verification failed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, "Not configured")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	token, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Catalog.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var patch domain.RoomPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	room, err := h.Catalog.UpdateRoom(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Checkin  string `json:"checkin"`
		Checkout string `json:"checkout"`
		Room     any    `json:"room"` // forms send a label, scripts an id
		Guests   any    `json:"guests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking")
		return
	}
	b, err := h.Bookings.CreateBooking(r.Context(), domain.BookingInput{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Checkin:  body.Checkin,
		Checkout: body.Checkout,
		Room:     coerceString(body.Room),
		Guests:   coerceInt(body.Guests),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "bookingId": b.ID})
}

func (h *Handlers) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID    any    `json:"roomId"`
		Nights    any    `json:"nights"`
		Email     string `json:"email"`
		BookingID string `json:"bookingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	url, err := h.Payments.CreateCheckoutSession(r.Context(),
		int64(coerceInt(body.RoomID)), int64(coerceInt(body.Nights)), body.Email, body.BookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handlers) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if err := h.Payments.HandlePaymentEvent(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// coerceInt mirrors the loose form coercion clients rely on: numbers and
// numeric strings pass through, anything else becomes 0.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
