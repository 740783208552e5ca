package startCheckout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/payment"
	"provaa/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type CheckoutRequest struct {
	BookingReference string `json:"booking_reference" validate:"required"`
}

type CheckoutResponse struct {
	response.Response
	payment.CheckoutOutcome
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CheckoutStarter
type CheckoutStarter interface {
	Checkout(ctx context.Context, reference string) (*payment.CheckoutOutcome, error)
}

func New(log *slog.Logger, starter CheckoutStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.startCheckout.New"

		log := log.With(slog.String("op", op))

		var req CheckoutRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		log = log.With(slog.String("reference", req.BookingReference))

		out, err := starter.Checkout(r.Context(), req.BookingReference)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, storage.ErrBookingNotPending):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is not pending"))
			case errors.Is(err, payment.ErrBookingExpired):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking has expired"))
			case errors.Is(err, storage.ErrNotEnoughSpots):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not enough spots remaining"))
			default:
				log.Error("failed to start checkout", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to start checkout"))
			}
			return
		}

		log.Info("checkout started", slog.Bool("free", out.Free))

		render.JSON(w, r, CheckoutResponse{
			Response:        response.OK(),
			CheckoutOutcome: *out,
		})
	}
}
