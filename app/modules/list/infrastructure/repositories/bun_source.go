package listdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/uptrace/bun"
)

// BunSource reads the list from the list_manifest and list_levels tables.
type BunSource struct {
	db bun.IDB
}

// NewBunSource creates a BunSource over db.
func NewBunSource(db bun.IDB) *BunSource {
	return &BunSource{db: db}
}

func (s *BunSource) Kind() string { return "postgres" }

// Manifest returns level paths ordered by position.
func (s *BunSource) Manifest(ctx context.Context) ([]string, error) {
	var entries []ManifestEntry
	err := s.db.NewSelect().
		Model(&entries).
		Column("position", "path").
		Order("position ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to select manifest: %w", err)
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// Level returns the stored document for path.
func (s *BunSource) Level(ctx context.Context, path string) (listdomain.Level, error) {
	doc := new(LevelDocument)
	err := s.db.NewSelect().
		Model(doc).
		Where("path = ?", path).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listdomain.Level{}, fmt.Errorf("level %s: %w", path, ErrNotFound)
		}
		return listdomain.Level{}, fmt.Errorf("failed to select level %s: %w", path, err)
	}
	return doc.Document, nil
}

// ReplaceList stores levels and makes paths the new list order in a single
// transaction. levels must hold one document per path.
func (s *BunSource) ReplaceList(ctx context.Context, paths []string, levels []listdomain.Level) error {
	if len(paths) != len(levels) {
		return fmt.Errorf("got %d paths for %d levels", len(paths), len(levels))
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*ManifestEntry)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear manifest: %w", err)
		}
		if len(paths) == 0 {
			return nil
		}

		docs := make([]LevelDocument, len(paths))
		manifest := make([]ManifestEntry, len(paths))
		now := time.Now()
		for i, path := range paths {
			level := levels[i]
			level.Path = path
			docs[i] = LevelDocument{Path: path, Document: level, UpdatedAt: now}
			manifest[i] = ManifestEntry{Position: i, Path: path}
		}

		_, err := tx.NewInsert().
			Model(&docs).
			On("CONFLICT (path) DO UPDATE").
			Set("document = EXCLUDED.document").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert levels: %w", err)
		}
		if _, err := tx.NewInsert().Model(&manifest).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert manifest: %w", err)
		}
		return nil
	})
}
