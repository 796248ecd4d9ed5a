package listdb

import (
	"context"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// Source performs keyed reads of the list data.
//
// Error semantics:
//   - ErrNotFound (possibly wrapped): the key does not exist
//   - Other errors: transport or decoding failures
type Source interface {
	// Kind names the backing store for logs and metrics.
	Kind() string

	// Manifest returns the ordered level paths. Index 0 is the hardest level.
	Manifest(ctx context.Context) ([]string, error)

	// Level returns the level document stored under path.
	Level(ctx context.Context, path string) (listdomain.Level, error)
}

// Repository produces the ordered level list.
type Repository interface {
	// FetchList returns every level in manifest order with records sorted by
	// descending percent. Any failure aborts the whole call with a *FetchError.
	FetchList(ctx context.Context) ([]listdomain.Level, error)
}
