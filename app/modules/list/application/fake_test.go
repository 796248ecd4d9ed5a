package listservice

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
)

// ------------------------
// Fake Repository
// ------------------------

type FakeRepository struct {
	calls atomic.Int32

	FetchListFunc func(ctx context.Context) ([]listdomain.Level, error)
}

func (f *FakeRepository) FetchList(ctx context.Context) ([]listdomain.Level, error) {
	f.calls.Add(1)
	if f.FetchListFunc != nil {
		return f.FetchListFunc(ctx)
	}
	return []listdomain.Level{}, nil
}

func (f *FakeRepository) Calls() int { return int(f.calls.Load()) }

var _ listdb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	observability.NoopListMetrics

	mu      sync.Mutex
	trace   []string
	players int
}

func (f *FakeMetrics) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	f.record("attempt:" + operation)
}

func (f *FakeMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	f.record("success:" + operation)
}

func (f *FakeMetrics) RecordOperationFailure(_ context.Context, operation string) {
	f.record("failure:" + operation)
}

func (f *FakeMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}

func (f *FakeMetrics) RecordLeaderboardSize(_ context.Context, players int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = players
}

func (f *FakeMetrics) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ observability.ListMetrics = (*FakeMetrics)(nil)

// sampleLevels is a three-level list with one verifier who also holds records.
func sampleLevels() []listdomain.Level {
	return []listdomain.Level{
		{
			Path:             "bloodbath",
			Name:             "Bloodbath",
			Verifier:         "Riot",
			Verification:     "https://video/riot",
			PercentToQualify: 55,
			Records: []listdomain.Record{
				{User: "Technical", Percent: 100, Link: "https://video/technical"},
				{User: "Cyclic", Percent: 78, Link: "https://video/cyclic"},
			},
		},
		{
			Path:             "acu",
			Name:             "Acu",
			Verifier:         "neigefeu",
			Verification:     "https://video/neigefeu",
			PercentToQualify: 50,
			Records: []listdomain.Record{
				{User: "Riot", Percent: 100, Link: "https://video/riot-acu"},
			},
		},
		{
			Path:             "tartarus",
			Name:             "Tartarus",
			Verifier:         "Dolphy",
			Verification:     "https://video/dolphy",
			PercentToQualify: 40,
		},
	}
}
