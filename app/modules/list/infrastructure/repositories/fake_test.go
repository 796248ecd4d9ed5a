package listdb

import (
	"context"
	"sync"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// ------------------------
// Fake Source
// ------------------------

type FakeSource struct {
	mu    sync.Mutex
	trace []string

	ManifestFunc func(ctx context.Context) ([]string, error)
	LevelFunc    func(ctx context.Context, path string) (listdomain.Level, error)
}

func NewFakeSource() *FakeSource {
	return &FakeSource{trace: []string{}}
}

func (f *FakeSource) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeSource) Kind() string { return "fake" }

func (f *FakeSource) Manifest(ctx context.Context) ([]string, error) {
	f.record("Manifest")
	if f.ManifestFunc != nil {
		return f.ManifestFunc(ctx)
	}
	return []string{}, nil
}

func (f *FakeSource) Level(ctx context.Context, path string) (listdomain.Level, error) {
	f.record("Level:" + path)
	if f.LevelFunc != nil {
		return f.LevelFunc(ctx, path)
	}
	return listdomain.Level{}, ErrNotFound
}

// --- Accessors for assertions ---

func (f *FakeSource) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ Source = (*FakeSource)(nil)
