package chi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// quietPaths are polled by orchestrators and scrapers and stay out of the access log
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware writes one access log line per request once the response is done.
// For video routes the line is emitted after the last body byte, so duration is the
// whole transfer and bytes tells a finished stream from a cut one.
func LoggerMiddleware(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				l.Info("http_request",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"query", r.URL.RawQuery,
					"range", r.Header.Get("Range"),
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(started),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
