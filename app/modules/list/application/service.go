package listservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"
)

// DefaultFetchTimeout bounds a shared list fetch once it no longer belongs to
// a single caller.
const DefaultFetchTimeout = 30 * time.Second

// ListService implements the Service interface.
type ListService struct {
	repo    listdb.Repository
	policy  listdomain.ScorePolicy
	logger  *slog.Logger
	metrics observability.ListMetrics
	tracer  trace.Tracer

	group        singleflight.Group
	fetchTimeout time.Duration
}

// NewListService creates a new ListService. Nil logger, metrics and tracer
// are replaced with no-op implementations.
func NewListService(
	repo listdb.Repository,
	policy listdomain.ScorePolicy,
	logger *slog.Logger,
	metrics observability.ListMetrics,
	tracer trace.Tracer,
) *ListService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if metrics == nil {
		metrics = observability.NewNoopListMetrics()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("listservice")
	}
	return &ListService{
		repo:         repo,
		policy:       policy,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// operationFunc is the signature wrapped by withTelemetry.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *ListService,
	ctx context.Context,
	operationName string,
	op operationFunc[T],
) (result T, err error) {
	ctx, correlationID := observability.EnsureCorrelationID(ctx)

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("correlation_id", correlationID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.DebugContext(ctx, operationName+" triggered",
		"operation", operationName,
		"correlation_id", correlationID,
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				"operation", operationName,
				"correlation_id", correlationID,
				"error", err,
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			"operation", operationName,
			"correlation_id", correlationID,
			"error", wrappedErr,
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		var zero T
		return zero, wrappedErr
	}

	s.logger.InfoContext(ctx, operationName+" completed successfully",
		"operation", operationName,
		"correlation_id", correlationID,
	)
	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// shared runs fn once for all concurrent callers using key. The computation
// is detached from any single caller's cancellation and bounded by
// fetchTimeout; each caller still stops waiting when its own ctx ends.
func shared[T any](s *ListService, ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ch := s.group.DoChan(key, func() (val any, err error) {
		// singleflight re-panics on a fresh goroutine, out of reach of any
		// caller's recover.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in shared %s fetch: %v", key, r)
			}
		}()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return fn(fetchCtx)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// levels returns the current list. Callers receive their own copy.
func (s *ListService) levels(ctx context.Context) ([]listdomain.Level, error) {
	levels, err := shared(s, ctx, "list", s.repo.FetchList)
	if err != nil {
		return nil, err
	}
	out := make([]listdomain.Level, len(levels))
	for i, level := range levels {
		out[i] = level.Clone()
	}
	return out, nil
}

// standings returns the current leaderboard. Callers receive their own copy.
func (s *ListService) standings(ctx context.Context) ([]listdomain.PlayerStanding, error) {
	standings, err := shared(s, ctx, "leaderboard", func(ctx context.Context) ([]listdomain.PlayerStanding, error) {
		levels, err := s.repo.FetchList(ctx)
		if err != nil {
			return nil, err
		}
		standings := listdomain.BuildLeaderboard(levels, s.policy)
		s.metrics.RecordLeaderboardSize(ctx, len(standings))
		return standings, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]listdomain.PlayerStanding, len(standings))
	for i, standing := range standings {
		out[i] = standing.Clone()
	}
	return out, nil
}
