package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the webhook, healthcheck and metrics endpoints.
func NewRouter(findings *FindingsHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.CleanPath)
	r.Use(chimw.StripSlashes)
	r.Use(chimw.Recoverer)

	r.Get("/healthcheck", Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/findings", findings.Create)

	return r
}
