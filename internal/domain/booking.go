package domain

import "time"

type Booking struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Checkin   string    `json:"checkin"`  // YYYY-MM-DD
	Checkout  string    `json:"checkout"` // YYYY-MM-DD
	Room      string    `json:"room"`     // room id when resolvable, raw label otherwise
	Guests    int       `json:"guests"`
	Paid      bool      `json:"paid"`
}

// BookingInput is the guest-submitted form. Guests <= 0 means "not given"
// and defaults to 1 at intake.
type BookingInput struct {
	Name     string
	Email    string
	Phone    string
	Checkin  string
	Checkout string
	Room     string
	Guests   int
}
