package models

import "time"

type Event struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	StartTime      string     `json:"start_time"`
	Venue          string     `json:"venue"`
	City           string     `json:"city"`
	Price          *float64   `json:"price"`
	Capacity       int        `json:"capacity"`
	SpotsRemaining int        `json:"spots_remaining"`
	HostID         string     `json:"host_id"`
	Category       string     `json:"category"`
	Image          string     `json:"image"`
}

func (e *Event) Location() string {
	switch {
	case e.Venue == "":
		return e.City
	case e.City == "":
		return e.Venue
	default:
		return e.Venue + ", " + e.City
	}
}

func (e *Event) TicketPrice() float64 {
	if e.Price == nil {
		return 0
	}

	return *e.Price
}
