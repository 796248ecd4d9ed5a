package list

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	listservice "github.com/Black-And-White-Club/demonlist/app/modules/list/application"
	listhandlers "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/handlers"
	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	listrouter "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/router"
	"github.com/Black-And-White-Club/demonlist/config"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the list module.
type Module struct {
	config   *config.Config
	service  listservice.Service
	handlers listhandlers.Handlers
	router   *listrouter.Router
	logger   *slog.Logger

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	closed     bool
}

// NewModule creates the list module around repo. HTTP routes are registered
// on httpRouter when it is non-nil; NATS subjects are served when nc is non-nil.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	repo listdb.Repository,
	logger *slog.Logger,
	metrics observability.ListMetrics,
	tracer trace.Tracer,
	nc *nats.Conn,
	httpRouter chi.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "Initializing list module")

	service := listservice.NewListService(repo, cfg.Scoring, logger, metrics, tracer)
	handlers := listhandlers.NewListHandlers(service, logger, tracer)

	if httpRouter != nil {
		listrouter.RegisterRoutes(httpRouter, handlers, listrouter.HTTPConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RateLimit:      cfg.HTTP.RateLimit,
			Burst:          cfg.HTTP.Burst,
		})
	}

	var router *listrouter.Router
	if nc != nil {
		router = listrouter.NewRouter(handlers, nc, cfg.NATS.SubjectPrefix, cfg.NATS.QueueGroup)
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		router:   router,
		logger:   logger,
	}, nil
}

// Run starts the NATS subscriptions, if any, and blocks until ctx is done
// or Close is called. Run returns at once if Close already ran.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	m.logger.InfoContext(ctx, "Starting list module")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Close waits on mu, so the router is either started before Close
	// stops it or never started at all.
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "List module closed before start")
		return
	}
	m.cancelFunc = cancel
	var startErr error
	if m.router != nil {
		startErr = m.router.Start()
	}
	m.mu.Unlock()

	if startErr != nil {
		m.logger.ErrorContext(ctx, "Failed to start list router",
			"error", startErr,
		)
		return
	}
	if m.router != nil {
		m.logger.InfoContext(ctx, "List module subscribed",
			"list_subject", m.router.Subject(listrouter.ListSubject),
			"leaderboard_subject", m.router.Subject(listrouter.LeaderboardSubject),
			"player_subject", m.router.Subject(listrouter.PlayerSubject),
		)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "List module goroutine stopped")
}

// Close stops the list module.
func (m *Module) Close() error {
	m.logger.Info("Stopping list module")

	m.mu.Lock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	if m.router != nil {
		if err := m.router.Stop(); err != nil {
			m.logger.Error("Error stopping list router", "error", err)
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("List module stopped")
	return nil
}

// GetService returns the list service for use by other components.
func (m *Module) GetService() listservice.Service {
	return m.service
}
