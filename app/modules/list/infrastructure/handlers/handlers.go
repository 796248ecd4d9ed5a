package listhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	listservice "github.com/Black-And-White-Club/demonlist/app/modules/list/application"
	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// ListHandlers implements the Handlers interface.
type ListHandlers struct {
	service listservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewListHandlers creates a new ListHandlers instance.
func NewListHandlers(
	service listservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ListHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	var fetchErr *listdb.FetchError
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, listservice.ErrLevelNotFound), errors.Is(err, listservice.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
