package listrouter

import (
	"errors"
	"sync"

	listhandlers "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"
)

// Subject suffixes appended to the configured prefix.
const (
	ListSubject        = "list.get"
	LeaderboardSubject = "leaderboard.get"
	PlayerSubject      = "player.get"
)

// HTTPConfig tunes the API middleware.
type HTTPConfig struct {
	AllowedOrigins []string
	RateLimit      float64
	Burst          int
}

// RegisterRoutes mounts the list API under /api and the health check at /healthz.
func RegisterRoutes(r chi.Router, handlers listhandlers.Handlers, cfg HTTPConfig) {
	r.Get("/healthz", handlers.HandleHealth)

	limiter := listhandlers.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RealIP)
		r.Use(listhandlers.CorrelationMiddleware)
		r.Use(listhandlers.CORSMiddleware(cfg.AllowedOrigins))
		r.Use(listhandlers.RateLimitMiddleware(limiter))

		r.Get("/list", handlers.HandleGetList)
		r.Get("/list/{rank}", handlers.HandleGetLevel)
		r.Get("/leaderboard", handlers.HandleGetLeaderboard)
		r.Get("/leaderboard/{user}", handlers.HandleGetPlayer)
		r.Get("/export/leaderboard.xlsx", handlers.HandleExportLeaderboard)
		r.Get("/charts/points.png", handlers.HandlePointsChart)
	})
}

// Router manages NATS subscriptions for the list module.
type Router struct {
	handlers   listhandlers.Handlers
	nc         *nats.Conn
	prefix     string
	queueGroup string

	mu            sync.Mutex
	subscriptions []*nats.Subscription
}

// NewRouter creates a new list router.
func NewRouter(handlers listhandlers.Handlers, nc *nats.Conn, prefix, queueGroup string) *Router {
	return &Router{
		handlers:   handlers,
		nc:         nc,
		prefix:     prefix,
		queueGroup: queueGroup,
	}
}

// Subject returns the full subject for suffix.
func (r *Router) Subject(suffix string) string {
	if r.prefix == "" {
		return suffix
	}
	return r.prefix + "." + suffix
}

// Start subscribes to every list subject in the router's queue group.
func (r *Router) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := []struct {
		suffix  string
		handler nats.MsgHandler
	}{
		{ListSubject, r.handlers.HandleNATSList},
		{LeaderboardSubject, r.handlers.HandleNATSLeaderboard},
		{PlayerSubject, r.handlers.HandleNATSPlayer},
	}

	for _, route := range routes {
		sub, err := r.nc.QueueSubscribe(r.Subject(route.suffix), r.queueGroup, route.handler)
		if err != nil {
			// Clean up the subscriptions made so far
			r.unsubscribeAll()
			return err
		}
		r.subscriptions = append(r.subscriptions, sub)
	}
	return nil
}

// Stop unsubscribes from all NATS subjects. It is safe to call
// concurrently with Start.
func (r *Router) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unsubscribeAll()
}

// unsubscribeAll requires r.mu.
func (r *Router) unsubscribeAll() error {
	var errs []error
	for _, sub := range r.subscriptions {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, err)
		}
	}
	r.subscriptions = nil
	return errors.Join(errs...)
}
