package models

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// EventSnapshot is the copy of the event summary taken when the booking is
// created, so the booking still renders after the event changes.
type EventSnapshot struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Image    string `json:"image"`
	HostID   string `json:"host_id"`
}

type Booking struct {
	ID               int           `json:"id"`
	Reference        string        `json:"reference"`
	EventID          int           `json:"event_id"`
	UserID           *string       `json:"user_id,omitempty"`
	GuestName        string        `json:"guest_name,omitempty"`
	GuestEmail       string        `json:"guest_email,omitempty"`
	GuestPhone       string        `json:"guest_phone,omitempty"`
	NumberOfTickets  int           `json:"number_of_tickets"`
	PricePerTicket   float64       `json:"price_per_ticket"`
	TotalAmount      float64       `json:"total_amount"`
	Status           BookingStatus `json:"status"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	PaymentSessionID string        `json:"-"`
	CreatedAt        time.Time     `json:"created_at"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty"`
	Event            EventSnapshot `json:"event"`
}

// Subtotal is the ticket price times the ticket count, in whole cents.
func (b *Booking) Subtotal() float64 {
	return float64(cents(b.PricePerTicket)*int64(b.NumberOfTickets)) / 100
}

// ServiceFee is the part of the total that is not ticket price.
func (b *Booking) ServiceFee() float64 {
	return float64(cents(b.TotalAmount)-cents(b.PricePerTicket)*int64(b.NumberOfTickets)) / 100
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (b *Booking) IsFree() bool {
	return b.TotalAmount <= 0
}
