package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/demonlist/app/modules/list"
	"github.com/Black-And-White-Club/demonlist/config"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracerShutdownTimeout bounds the final span flush on Close.
const tracerShutdownTimeout = 5 * time.Second

// App wires the configured sources, the list module and its transports.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  observability.ListMetrics
	Tracer   trace.Tracer

	TracerProvider *sdktrace.TracerProvider

	Sources    *Sources
	NATS       *nats.Conn
	ListModule *list.Module
	Router     chi.Router
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := observability.NewPrometheusListMetrics(registry, "demonlist")
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	tp, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName: cfg.Observability.ServiceName,
		Environment: cfg.Observability.Environment,
		Endpoint:    cfg.Observability.TracingEndpoint,
		SampleRatio: cfg.Observability.TraceSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	a := &App{
		Config:         cfg,
		Logger:         logger,
		Registry:       registry,
		Metrics:        metrics,
		Tracer:         tp.Tracer(observability.TracerName),
		TracerProvider: tp,
	}

	a.Sources, err = OpenSources(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.NATS.URL != "" {
		a.NATS, err = nats.Connect(cfg.NATS.URL,
			nats.Name("demonlist"),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		logger.InfoContext(ctx, "Connected to NATS", "url", a.NATS.ConnectedUrlRedacted())
	}

	a.Router = a.newRouter()

	repo := a.Sources.Repository(cfg, logger, metrics)
	module, err := list.NewModule(ctx, cfg, repo, logger, metrics, a.Tracer, a.NATS, a.Router)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize list module: %w", err)
	}
	a.ListModule = module

	return a, nil
}

// Close releases every connection the app opened.
func (a *App) Close() error {
	var errs []error
	if a.ListModule != nil {
		errs = append(errs, a.ListModule.Close())
	}
	if a.NATS != nil {
		errs = append(errs, a.NATS.Drain())
	}
	if a.Sources != nil {
		errs = append(errs, a.Sources.Close())
	}
	if a.TracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		errs = append(errs, a.TracerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
