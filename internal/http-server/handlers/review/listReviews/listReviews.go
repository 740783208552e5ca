package listReviews

import (
	"context"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"
	"strconv"
	"strings"

	"github.com/go-chi/render"
)

type ReviewsResponse struct {
	response.Response
	Reviews []models.Review `json:"reviews"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReviewsGetter
type ReviewsGetter interface {
	GetReviewsByBookings(ctx context.Context, bookingIDs []int) ([]models.Review, error)
}

// New serves the reviews of the given bookings. A failed query is logged and
// answered with an empty list.
func New(log *slog.Logger, getter ReviewsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.review.listReviews.New"

		log := log.With(slog.String("op", op))

		ids, err := parseIDs(r.URL.Query().Get("booking_ids"))
		if err != nil {
			log.Error("invalid booking ids", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking_ids"))
			return
		}

		reviews := []models.Review{}

		if len(ids) > 0 {
			found, err := getter.GetReviewsByBookings(r.Context(), ids)
			if r.Context().Err() != nil {
				log.Info("request cancelled, dropping reviews")
				return
			}

			if err != nil {
				log.Error("failed to get reviews", sl.Err(err))
			} else if found != nil {
				reviews = found
			}
		}

		render.JSON(w, r, ReviewsResponse{
			Response: response.OK(),
			Reviews:  reviews,
		})
	}
}

func parseIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
