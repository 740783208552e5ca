package retryPayment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type RetryResponse struct {
	response.Response
	payment.Result
	Redirect string `json:"redirect"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentRetrier
type PaymentRetrier interface {
	Retry(ctx context.Context, reference string) (payment.Result, error)
}

func New(log *slog.Logger, retrier PaymentRetrier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.retryPayment.New"

		ref := chi.URLParam(r, "ref")

		log := log.With(
			slog.String("op", op),
			slog.String("reference", ref),
		)

		res, err := retrier.Retry(r.Context(), ref)
		if err != nil {
			switch {
			case errors.Is(err, payment.ErrFlowNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("no payment in progress for booking"))
			case errors.Is(err, payment.ErrNotFailed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("payment has not failed"))
			default:
				log.Error("failed to retry payment", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to retry payment"))
			}
			return
		}

		if r.Context().Err() != nil {
			log.Info("request cancelled, dropping retry result")
			return
		}

		log.Info("payment retried", slog.String("state", string(res.State)))

		render.JSON(w, r, RetryResponse{
			Response: response.OK(),
			Result:   res,
			Redirect: payment.Redirect(res.State, ref),
		})
	}
}
