package cleanupBookings

import (
	"context"
	"log/slog"
	"net/http"
	"provaa/internal/lib/logger/sl"

	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type CleanupResponse struct {
	Success      bool  `json:"success"`
	CleanedCount int64 `json:"cleaned_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsCleaner
type BookingsCleaner interface {
	Run(ctx context.Context) (int64, error)
}

// New deletes expired unpaid bookings on demand. Failures are reported to the
// caller and not retried.
func New(log *slog.Logger, cleaner BookingsCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cleanup.cleanupBookings.New"

		log := log.With(slog.String("op", op))

		cleaned, err := cleaner.Run(r.Context())
		if err != nil {
			log.Error("failed to clean up expired bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}

		log.Info("expired bookings cleaned up", slog.Int64("cleaned_count", cleaned))

		render.JSON(w, r, CleanupResponse{
			Success:      true,
			CleanedCount: cleaned,
		})
	}
}

// Preflight answers OPTIONS with an empty 200; CORS headers come from CORS().
func Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func CORS() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"authorization", "x-client-info", "apikey", "content-type"},
		OptionsPassthrough: true,
	})
}
