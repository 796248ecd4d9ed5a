package listdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// DefaultManifest is the name of the manifest document inside the data directory.
const DefaultManifest = "_list.json"

// FileSource reads the manifest and level documents from a file system,
// usually os.DirFS over the data directory.
type FileSource struct {
	fsys     fs.FS
	manifest string
}

// NewFileSource creates a FileSource. An empty manifest selects DefaultManifest.
func NewFileSource(fsys fs.FS, manifest string) *FileSource {
	if manifest == "" {
		manifest = DefaultManifest
	}
	return &FileSource{fsys: fsys, manifest: manifest}
}

func (s *FileSource) Kind() string { return "file" }

// Manifest decodes the manifest document.
func (s *FileSource) Manifest(ctx context.Context) ([]string, error) {
	var paths []string
	if err := s.readJSON(ctx, s.manifest, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Level decodes <path>.json.
func (s *FileSource) Level(ctx context.Context, path string) (listdomain.Level, error) {
	var level listdomain.Level
	if err := s.readJSON(ctx, path+".json", &level); err != nil {
		return listdomain.Level{}, err
	}
	return level, nil
}

func (s *FileSource) readJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
