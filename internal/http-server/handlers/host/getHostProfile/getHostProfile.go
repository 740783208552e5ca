package getHostProfile

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
)

type HostResponse struct {
	response.Response
	Host *models.HostProfile `json:"host"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HostProfileGetter
type HostProfileGetter interface {
	GetHostProfile(ctx context.Context, id string) (*models.HostProfile, error)
}

// New serves a host profile. Unknown hosts and failed queries both answer
// with a null host.
func New(log *slog.Logger, getter HostProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.host.getHostProfile.New"

		hostID := chi.URLParam(r, "id")

		log := log.With(
			slog.String("op", op),
			slog.String("host_id", hostID),
		)

		host, err := getter.GetHostProfile(r.Context(), hostID)
		if r.Context().Err() != nil {
			log.Info("request cancelled, dropping host profile")
			return
		}

		if err != nil {
			if !errors.Is(err, storage.ErrHostNotFound) {
				log.Error("failed to get host profile", sl.Err(err))
			}
			host = nil
		}

		render.JSON(w, r, HostResponse{
			Response: response.OK(),
			Host:     host,
		})
	}
}
