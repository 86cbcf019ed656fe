package chi

import (
	"flixtube/internal/metrics"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
)

// Routes is implemented by every v1 handler
type Routes interface {
	Register(r chi.Router)
}

// RouterConfig tunes the shared middleware stack
type RouterConfig struct {
	Env string
	// RequestTimeout cancels slow requests; zero disables it, which streaming services need.
	RequestTimeout time.Duration
}

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, cfg RouterConfig, handlers ...Routes) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.RequestSize(5 << 20)) //5mb

	if cfg.Env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Range", "If-Range", "If-None-Match", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Length", "Content-Range", "Accept-Ranges"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
