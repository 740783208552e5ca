package cancelPayment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/payment"
	"provaa/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type CancelResponse struct {
	response.Response
	payment.Result
	Redirect string `json:"redirect"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentCanceler
type PaymentCanceler interface {
	Cancel(ctx context.Context, reference string) (payment.Result, error)
}

func New(log *slog.Logger, canceler PaymentCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.cancelPayment.New"

		ref := chi.URLParam(r, "ref")

		log := log.With(
			slog.String("op", op),
			slog.String("reference", ref),
		)

		res, err := canceler.Cancel(r.Context(), ref)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, payment.ErrAlreadyConfirmed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is already paid"))
			default:
				log.Error("failed to cancel payment", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel payment"))
			}
			return
		}

		log.Info("payment cancelled")

		render.JSON(w, r, CancelResponse{
			Response: response.OK(),
			Result:   res,
			Redirect: payment.Redirect(res.State, ref),
		})
	}
}
