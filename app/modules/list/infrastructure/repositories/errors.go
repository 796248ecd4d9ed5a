package listdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested manifest or level document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyKey indicates a manifest entry with no level path.
	ErrEmptyKey = errors.New("empty level path")
)

// FetchError is returned when the manifest or a level document cannot be
// retrieved. Key names the manifest or the level path that failed.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError carries a non-success HTTP response from a remote source.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Is lets a 404 response match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
