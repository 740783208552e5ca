package getBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/api/view"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"
	"provaa/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingResponse struct {
	response.Response
	Booking view.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBooking.New"

		ref := chi.URLParam(r, "ref")

		log := log.With(
			slog.String("op", op),
			slog.String("reference", ref),
		)

		b, err := getter.GetBookingByReference(r.Context(), ref)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				log.Info("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get booking"))
			return
		}

		render.JSON(w, r, BookingResponse{
			Response: response.OK(),
			Booking:  view.NewBooking(*b),
		})
	}
}
