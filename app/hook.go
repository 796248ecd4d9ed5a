package app

import (
	"context"
	"net/http"
)

// WaitForShutdown blocks until ctx is done and then gracefully stops srvs.
func (a *App) WaitForShutdown(ctx context.Context, srvs ...*http.Server) {
	<-ctx.Done()

	a.Logger.Info("Shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for _, srv := range srvs {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Server forced to shutdown", "addr", srv.Addr, "error", err)
		}
	}
}
