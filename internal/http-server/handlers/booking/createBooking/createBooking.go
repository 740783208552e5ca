package createBooking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"provaa/internal/booking"
	"provaa/internal/config"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/api/view"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"
	"provaa/internal/storage"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type BookingRequest struct {
	UserID        string `json:"user_id"`
	GuestName     string `json:"guest_name" validate:"required_without=UserID"`
	GuestEmail    string `json:"guest_email" validate:"required_without=UserID,omitempty,email"`
	GuestPhone    string `json:"guest_phone"`
	Tickets       int    `json:"tickets" validate:"min=1"`
	PaymentMethod string `json:"payment_method"`
}

type BookingResponse struct {
	response.Response
	Booking view.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
}

func New(log *slog.Logger, creator BookingCreator, cfg config.Booking) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(slog.String("op", op))

		eventIdStr := chi.URLParam(r, "id")
		if eventIdStr == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		eventID, err := strconv.Atoi(eventIdStr)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int("event_id", eventID))

		var req BookingRequest

		err = render.DecodeJSON(r.Body, &req)
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

		if cfg.MaxTickets > 0 && req.Tickets > cfg.MaxTickets {
			log.Error("too many tickets requested", slog.Int("tickets", req.Tickets))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("field Tickets must be at most %d", cfg.MaxTickets)))
			return
		}

		event, err := creator.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to book event"))
			return
		}

		order := booking.Order{
			GuestName:     req.GuestName,
			GuestEmail:    req.GuestEmail,
			GuestPhone:    req.GuestPhone,
			Tickets:       req.Tickets,
			PaymentMethod: req.PaymentMethod,
		}
		if req.UserID != "" {
			order.UserID = &req.UserID
		}

		created, err := creator.CreateBooking(r.Context(), booking.Draft(event, order, cfg.ServiceFeePercent))
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrNotEnoughSpots):
				log.Info("not enough spots", slog.Int("tickets", req.Tickets))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not enough spots remaining"))
			default:
				log.Error("failed to create booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to book event"))
			}
			return
		}

		log.Info("booking created", slog.String("reference", created.Reference))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, BookingResponse{
			Response: response.OK(),
			Booking:  view.NewBooking(*created),
		})
	}
}
