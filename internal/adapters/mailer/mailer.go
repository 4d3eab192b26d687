package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"oldbaku_hotel/internal/domain"
)

// Mailer sends the owner a plain-text booking summary over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// New returns nil when no transport is configured; callers treat a nil
// Mailer as "notifications off".
func New(host string, port int, user, pass, ownerAddr string) *Mailer {
	if host == "" || ownerAddr == "" {
		return nil
	}
	d := gomail.NewDialer(host, port, user, pass)
	d.SSL = port == 465
	return &Mailer{dialer: d, from: user, to: ownerAddr}
}

func (m *Mailer) Notify(ctx context.Context, b domain.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, "Old Baku Bookings"))
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "Новая бронь на сайте")
	msg.SetBody("text/plain", summary(b))
	return m.dialer.DialAndSend(msg)
}

func summary(b domain.Booking) string {
	return fmt.Sprintf(
		"Гость: %s\nEmail: %s\nТелефон: %s\nЗаезд: %s\nОтъезд: %s\nНомер: %s\nГостей: %d",
		b.Name, b.Email, b.Phone, b.Checkin, b.Checkout, b.Room, b.Guests,
	)
}
