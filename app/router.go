package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter returns the root HTTP router. /metrics is served here unless a
// dedicated metrics address is configured.
func (a *App) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if a.Config.HTTP.WriteTimeout > 0 {
		r.Use(middleware.Timeout(a.Config.HTTP.WriteTimeout))
	}

	if a.Config.Observability.MetricsAddress == "" {
		r.Handle("/metrics", a.metricsHandler())
	}
	return r
}

func (a *App) metricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
}
