// Package view decorates models with the display labels the front-end renders.
package view

import (
	"provaa/internal/lib/format"
	"provaa/internal/models"
)

type Event struct {
	models.Event
	PriceLabel string `json:"price_label"`
	DateLabel  string `json:"date_label"`
}

func NewEvent(e models.Event) Event {
	return Event{
		Event:      e,
		PriceLabel: format.PriceWithPerPerson(e.Price),
		DateLabel:  format.DateRange(e.StartDate, e.EndDate),
	}
}

func NewEvents(events []models.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, NewEvent(e))
	}

	return out
}

type Booking struct {
	models.Booking
	ServiceFeeLabel string `json:"service_fee_label"`
	TotalLabel      string `json:"total_label"`
}

func NewBooking(b models.Booking) Booking {
	return Booking{
		Booking:         b,
		ServiceFeeLabel: format.Price(format.Amount(b.ServiceFee())),
		TotalLabel:      format.Price(format.Amount(b.TotalAmount)),
	}
}

func NewBookings(bookings []models.Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBooking(b))
	}

	return out
}
