package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the chi router for the triage service.
// listener may be nil when microphone capture is not configured.
func NewRouter(triage TriageProvider, events EventQuerier, listener Listener, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	triageHandler := NewTriageHandler(triage)
	eventHandler := NewEventHandler(events)
	captureHandler := NewCaptureHandler(listener)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/triage", triageHandler.Classify)
		r.Post("/transcribe", captureHandler.Transcribe)
		r.Get("/events", eventHandler.List)
	})

	return r
}

// requestLogger logs one line per request via slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
