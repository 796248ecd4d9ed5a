package listdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the level fan-out when no limit is configured.
const DefaultConcurrency = 8

// LevelRepository reads the manifest and every level document from a Source.
type LevelRepository struct {
	source      Source
	manifestKey string
	concurrency int
	logger      *slog.Logger
	metrics     observability.ListMetrics
}

// NewLevelRepository creates a LevelRepository. manifestKey names the manifest
// in FetchErrors; concurrency <= 0 selects DefaultConcurrency.
func NewLevelRepository(
	source Source,
	manifestKey string,
	concurrency int,
	logger *slog.Logger,
	metrics observability.ListMetrics,
) *LevelRepository {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if metrics == nil {
		metrics = observability.NewNoopListMetrics()
	}
	return &LevelRepository{
		source:      source,
		manifestKey: manifestKey,
		concurrency: concurrency,
		logger:      logger,
		metrics:     metrics,
	}
}

// FetchList retrieves the manifest and then every level concurrently. The
// first failure cancels outstanding reads; FetchList returns only after all
// of them have stopped.
func (r *LevelRepository) FetchList(ctx context.Context) ([]listdomain.Level, error) {
	start := time.Now()

	paths, err := r.source.Manifest(ctx)
	if err != nil {
		r.metrics.RecordLevelFetch(ctx, r.source.Kind(), "error")
		return nil, &FetchError{Key: r.manifestKey, Err: err}
	}

	levels := make([]listdomain.Level, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if path == "" {
				return &FetchError{Key: fmt.Sprintf("%s[%d]", r.manifestKey, i), Err: ErrEmptyKey}
			}
			if err := gctx.Err(); err != nil {
				return &FetchError{Key: path, Err: err}
			}

			level, err := r.source.Level(gctx, path)
			if err != nil {
				r.metrics.RecordLevelFetch(gctx, r.source.Kind(), "error")
				return &FetchError{Key: path, Err: err}
			}
			r.metrics.RecordLevelFetch(gctx, r.source.Kind(), "ok")

			level.Path = path
			level.SortRecords()
			levels[i] = level
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.WarnContext(ctx, "Level list fetch failed",
			"source", r.source.Kind(),
			"error", err,
		)
		return nil, err
	}

	r.logger.DebugContext(ctx, "Level list fetched",
		"source", r.source.Kind(),
		"levels", len(levels),
		"duration", time.Since(start),
	)
	return levels, nil
}
