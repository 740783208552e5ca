package cancelBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceler
type BookingCanceler interface {
	CancelBooking(ctx context.Context, ref string) error
}

func New(log *slog.Logger, canceler BookingCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		ref := chi.URLParam(r, "ref")

		log := log.With(
			slog.String("op", op),
			slog.String("reference", ref),
		)

		err := canceler.CancelBooking(r.Context(), ref)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				log.Info("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, storage.ErrBookingNotPending):
				log.Info("booking already cancelled")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking cannot be cancelled"))
			default:
				log.Error("failed to cancel booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel booking"))
			}
			return
		}

		log.Info("booking cancelled")

		render.JSON(w, r, response.OK())
	}
}
