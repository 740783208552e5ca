package verifyPayment

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

type VerifyRequest struct {
	BookingReference string `json:"booking_reference" validate:"required"`
	SessionLost      bool   `json:"session_lost"`
}

type VerifyResponse struct {
	response.Response
	payment.Result
	Redirect string `json:"redirect"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentVerifier
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string, sessionLost bool) (payment.Result, error)
}

// New runs the verification flow for a buyer returning from checkout. A
// verifying-payment answer means the client should call again.
func New(log *slog.Logger, verifier PaymentVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.verifyPayment.New"

		log := log.With(slog.String("op", op))

		var req VerifyRequest

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

		res, err := verifier.Verify(r.Context(), req.BookingReference, req.SessionLost)
		if r.Context().Err() != nil {
			log.Info("request cancelled, dropping verification result")
			return
		}
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				log.Info("booking not found", slog.String("reference", req.BookingReference))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to verify payment", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify payment"))
			return
		}

		log.Info("payment verification finished",
			slog.String("reference", req.BookingReference),
			slog.String("state", string(res.State)),
		)

		render.JSON(w, r, VerifyResponse{
			Response: response.OK(),
			Result:   res,
			Redirect: payment.Redirect(res.State, req.BookingReference),
		})
	}
}
