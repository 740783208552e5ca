// Package boundary isolates a route subtree: a panic inside it is logged and
// answered with a fallback that tells the client how to retry, while the rest
// of the router keeps serving.
package boundary

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"provaa/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Fallback struct {
	response.Response
	Retry string `json:"retry,omitempty"`
}

// RetryFunc returns the URL a client should call to re-enter the failed flow.
type RetryFunc func(r *http.Request) string

func New(log *slog.Logger, message string, retry RetryFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/boundary"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)

				if ww.Status() != 0 {
					return
				}

				retryURL := r.URL.Path
				if retry != nil {
					if u := retry(r); u != "" {
						retryURL = u
					}
				}

				render.Status(r, http.StatusInternalServerError)
				render.JSON(ww, r, Fallback{
					Response: response.Error(message),
					Retry:    retryURL,
				})
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}
