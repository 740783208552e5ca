package getSettings

import (
	"context"
	"log/slog"
	"net/http"
	"provaa/internal/lib/api/response"
	"provaa/internal/models"

	"github.com/go-chi/render"
)

type SettingsResponse struct {
	response.Response
	Settings models.SEOSettings `json:"settings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SettingsGetter
type SettingsGetter interface {
	Settings(ctx context.Context) models.SEOSettings
}

func New(log *slog.Logger, getter SettingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seo.getSettings.New"

		log := log.With(slog.String("op", op))

		settings := getter.Settings(r.Context())
		if r.Context().Err() != nil {
			log.Info("request cancelled, dropping seo settings")
			return
		}

		render.JSON(w, r, SettingsResponse{
			Response: response.OK(),
			Settings: settings,
		})
	}
}
