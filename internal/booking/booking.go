// Package booking prices a ticket order and turns it into a pending booking.
package booking

import (
	"math"
	"strings"
	"time"

	"provaa/internal/lib/format"
	"provaa/internal/models"

	"github.com/google/uuid"
)

const (
	ReferencePrefix = "PRV-"
	referenceLength = 8
)

type Order struct {
	UserID        *string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	Tickets       int
	PaymentMethod string
}

// ServiceFee is percent of subtotal, rounded to cents.
func ServiceFee(subtotal, percent float64) float64 {
	if subtotal <= 0 || percent <= 0 {
		return 0
	}

	return roundCents(subtotal * percent / 100)
}

// Total is the ticket subtotal plus the service fee. The price is taken to
// the cent before multiplying so the total never falls under the subtotal.
func Total(pricePerTicket float64, tickets int, feePercent float64) float64 {
	subtotal := float64(toCents(pricePerTicket)*int64(tickets)) / 100

	return roundCents(subtotal + ServiceFee(subtotal, feePercent))
}

func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return ReferencePrefix + strings.ToUpper(id[:referenceLength])
}

// Draft builds the pending booking for order against event. The caller persists it.
func Draft(event *models.Event, order Order, feePercent float64) *models.Booking {
	price := roundCents(event.TicketPrice())

	return &models.Booking{
		Reference:       NewReference(),
		EventID:         event.ID,
		UserID:          order.UserID,
		GuestName:       order.GuestName,
		GuestEmail:      order.GuestEmail,
		GuestPhone:      order.GuestPhone,
		NumberOfTickets: order.Tickets,
		PricePerTicket:  price,
		TotalAmount:     Total(price, order.Tickets, feePercent),
		Status:          models.BookingStatusPending,
		PaymentMethod:   order.PaymentMethod,
		Event:           Snapshot(event),
	}
}

func Snapshot(event *models.Event) models.EventSnapshot {
	return models.EventSnapshot{
		Title:    event.Title,
		Date:     format.DateRange(event.StartDate, event.EndDate),
		Time:     event.StartTime,
		Location: event.Location(),
		Image:    event.Image,
		HostID:   event.HostID,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Expired reports whether a pending booking has outlived the checkout window.
func Expired(b *models.Booking, now time.Time, ttl time.Duration) bool {
	return b.Status == models.BookingStatusPending && b.CreatedAt.Before(now.Add(-ttl))
}
