package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/gabgonzales/portfolio-api/internal/middleware"
	"github.com/gabgonzales/portfolio-api/internal/persona"
)

// RouterConfig holds router wiring injected from main.
type RouterConfig struct {
	CORSAllowedOrigins []string
	StaticDir          string
	Profile            *persona.Profile
	ChatHandler        http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// The widget parses every body as JSON, so even router-level misses
	// must answer with the envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrorMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// The chat handler owns its own method check (part of its request state
	// machine), so it is mounted method-agnostic.
	r.Handle("/api/chat", cfg.ChatHandler)

	r.Get("/api/portfolio", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, cfg.Profile)
	})

	// Static portfolio site, when deployed alongside the API.
	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fs.ServeHTTP(w, r)
		})
	}

	return r
}
