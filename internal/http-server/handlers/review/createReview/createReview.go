package createReview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"
	"provaa/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ReviewRequest struct {
	UserID  string  `json:"user_id" validate:"required"`
	Rating  int     `json:"rating" validate:"min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type ReviewResponse struct {
	response.Response
	Review *models.Review `json:"review"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReviewCreator
type ReviewCreator interface {
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)
	GetReviewsByBookings(ctx context.Context, bookingIDs []int) ([]models.Review, error)
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
}

func New(log *slog.Logger, creator ReviewCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.review.createReview.New"

		ref := chi.URLParam(r, "ref")

		log := log.With(
			slog.String("op", op),
			slog.String("reference", ref),
		)

		var req ReviewRequest

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

		b, err := creator.GetBookingByReference(r.Context(), ref)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create review"))
			return
		}

		if b.Status != models.BookingStatusConfirmed {
			log.Info("review for unconfirmed booking rejected", slog.String("status", string(b.Status)))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("only confirmed bookings can be reviewed"))
			return
		}

		existing, err := creator.GetReviewsByBookings(r.Context(), []int{b.ID})
		if err != nil {
			log.Error("failed to get reviews", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create review"))
			return
		}

		if models.HasReview(existing, b.ID, req.UserID) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(storage.ErrReviewExists.Error()))
			return
		}

		created, err := creator.CreateReview(r.Context(), models.Review{
			BookingID: b.ID,
			UserID:    req.UserID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			log.Error("failed to create review", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create review"))
			return
		}

		log.Info("review created", slog.Int("review_id", created.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ReviewResponse{
			Response: response.OK(),
			Review:   created,
		})
	}
}
