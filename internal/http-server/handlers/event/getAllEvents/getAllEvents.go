package getAllEvents

import (
	"context"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/lib/api/view"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"

	"github.com/go-chi/render"
)

type AllEventsResponse struct {
	response.Response
	Events []view.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
}

func New(log *slog.Logger, events EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		allEvents, err := events.GetAllEvents(r.Context())
		if err != nil {
			log.Error("failed to get all events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events successfully received", slog.Int("count", len(allEvents)))

		responseOK(w, r, allEvents)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event) {
	render.JSON(w, r, AllEventsResponse{
		Response: response.OK(),
		Events:   view.NewEvents(events),
	})
}
