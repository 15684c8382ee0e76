// Package api exposes the extraction engine over HTTP: a two-file upload
// endpoint returning the same JSON shape the batch CLI emits.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(config, metrics)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if config.APIKey != "" {
			r.Use(apiKeyMiddleware(config.APIKey, metrics))
		}
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Post("/extract", metrics.InstrumentHandler("POST", "/api/v1/extract", server.handleExtract))
	})

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("dnostats API listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
