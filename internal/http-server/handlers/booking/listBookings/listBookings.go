package listBookings

import (
	"context"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/api/view"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingsResponse struct {
	response.Response
	Bookings []view.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsLister
type BookingsLister interface {
	GetBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

func New(log *slog.Logger, lister BookingsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		userID := chi.URLParam(r, "userID")

		log := log.With(
			slog.String("op", op),
			slog.String("user_id", userID),
		)

		bookings, err := lister.GetBookingsByUser(r.Context(), userID)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list bookings"))
			return
		}

		log.Info("bookings listed", slog.Int("count", len(bookings)))

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: view.NewBookings(bookings),
		})
	}
}
