package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"github.com/Black-And-White-Club/demonlist/config"
	"github.com/Black-And-White-Club/demonlist/db/bundb"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// postgresManifestKey names the manifest table in fetch errors.
const postgresManifestKey = "list_manifest"

// Sources holds the configured level source and the connections behind it.
type Sources struct {
	Source      listdb.Source
	ManifestKey string
	DB          *bun.DB
	Redis       *redis.Client
}

// OpenSources builds the level source selected by cfg, wrapping it in the
// Redis cache when one is configured.
func OpenSources(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Sources, error) {
	s := &Sources{ManifestKey: cfg.Source.Manifest}

	switch cfg.Source.Kind {
	case config.SourceFile:
		s.Source = listdb.NewFileSource(os.DirFS(cfg.Source.Dir), cfg.Source.Manifest)
	case config.SourceHTTP:
		s.Source = listdb.NewHTTPSource(
			cfg.Source.BaseURL,
			cfg.Source.Manifest,
			cfg.Source.Timeout,
			cfg.Source.RateLimit,
			cfg.Source.Burst,
		)
	case config.SourcePostgres:
		db, err := bundb.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.DB = db
		s.Source = listdb.NewBunSource(db)
		s.ManifestKey = postgresManifestKey
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	if cfg.Redis.Addr != "" {
		s.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			logger.WarnContext(ctx, "Redis unreachable, cache will fall through",
				"addr", cfg.Redis.Addr,
				"error", err,
			)
		}
		s.Source = listdb.NewCachedSource(s.Source, s.Redis, cfg.Redis.Prefix, cfg.Redis.TTL, logger)
	}

	logger.InfoContext(ctx, "Level source ready", "source", s.Source.Kind())
	return s, nil
}

// Repository returns a LevelRepository reading from the source.
func (s *Sources) Repository(cfg *config.Config, logger *slog.Logger, metrics observability.ListMetrics) *listdb.LevelRepository {
	return listdb.NewLevelRepository(s.Source, s.ManifestKey, cfg.Source.Concurrency, logger, metrics)
}

// Close releases the database and Redis connections.
func (s *Sources) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
