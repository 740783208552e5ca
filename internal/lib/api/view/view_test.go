package view

import (
	"encoding/json"
	"testing"
	"time"

	"provaa/internal/lib/format"
	"provaa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	paid := NewEvent(models.Event{
		ID:        1,
		Title:     "Wine Tasting",
		StartDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		Price:     format.Amount(12.5),
	})
	assert.Equal(t, "€12.5 per person", paid.PriceLabel)
	assert.Equal(t, "Jun 5 - Jun 7", paid.DateLabel)

	free := NewEvent(models.Event{ID: 2, StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, "FREE", free.PriceLabel)
	assert.Equal(t, "Jan 15", free.DateLabel)
}

func TestEventJSONIsFlat(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewEvent(models.Event{ID: 7, Title: "Olive Oil Walk", Price: format.Amount(20)}))
	require.NoError(t, err)

	body := string(b)
	assert.Equal(t, int64(7), gjson.Get(body, "id").Int())
	assert.Equal(t, "Olive Oil Walk", gjson.Get(body, "title").String())
	assert.Equal(t, "€20 per person", gjson.Get(body, "price_label").String())
}

func TestNewBooking(t *testing.T) {
	t.Parallel()

	b := NewBooking(models.Booking{NumberOfTickets: 2, PricePerTicket: 45, TotalAmount: 94.5})

	assert.Equal(t, "€4.5", b.ServiceFeeLabel)
	assert.Equal(t, "€94.5", b.TotalLabel)

	free := NewBooking(models.Booking{NumberOfTickets: 2})
	assert.Equal(t, "FREE", free.TotalLabel)
	assert.Len(t, NewBookings([]models.Booking{{}, {}}), 2)
}
