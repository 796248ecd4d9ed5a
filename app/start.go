package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// Start serves HTTP (and metrics, when configured separately) and runs the
// list module until ctx is cancelled, then shuts everything down.
func (a *App) Start(ctx context.Context) error {
	servers := []*http.Server{{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: a.Config.HTTP.ReadTimeout,
		ReadTimeout:       a.Config.HTTP.ReadTimeout,
		WriteTimeout:      a.Config.HTTP.WriteTimeout,
	}}
	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		servers = append(servers, &http.Server{
			Addr:              addr,
			Handler:           a.metricsHandler(),
			ReadHeaderTimeout: a.Config.HTTP.ReadTimeout,
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	// The module follows gctx, so a server that fails to bind also stops it.
	var wg sync.WaitGroup
	wg.Add(1)
	go a.ListModule.Run(gctx, &wg)

	for _, srv := range servers {
		g.Go(func() error {
			a.Logger.InfoContext(gctx, "Starting HTTP server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		a.WaitForShutdown(gctx, servers...)
		return nil
	})

	err := g.Wait()
	a.ListModule.Close()
	wg.Wait()
	return err
}
