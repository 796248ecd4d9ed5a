package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"github.com/Black-And-White-Club/demonlist/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func testConfig() *config.Config {
	return &config.Config{
		Scoring: listdomain.DefaultScorePolicy(),
		HTTP:    config.HTTPConfig{RateLimit: 100, Burst: 100},
		NATS:    config.NATSConfig{SubjectPrefix: "demonlist", QueueGroup: "demonlist"},
	}
}

func TestModule_ServesLeaderboardFromFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"_list.json": {Data: []byte(`["top", "second"]`)},
		"top.json": {Data: []byte(`{
			"name": "Top", "verifier": "Alice", "verification": "https://v/alice", "percentToQualify": 60,
			"records": [{"user": "Carol", "percent": 70, "link": "https://v/carol"}, {"user": "Bob", "percent": 100, "link": "https://v/bob"}]
		}`)},
		"second.json": {Data: []byte(`{"name": "Second", "verifier": "Bob", "percentToQualify": 50, "records": []}`)},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := listdb.NewLevelRepository(listdb.NewFileSource(fsys, ""), "_list.json", 2, logger, nil)

	r := chi.NewRouter()
	module, err := NewModule(context.Background(), testConfig(), repo, logger, nil, noop.NewTracerProvider().Tracer("test"), nil, r)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var standings []listdomain.PlayerStanding
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&standings))
	require.Len(t, standings, 3)
	assert.Equal(t, "Bob", standings[0].User)
	assert.Equal(t, "Alice", standings[1].User)
	assert.Equal(t, "Carol", standings[2].User)
	require.Len(t, standings[2].Progressed, 1)
	assert.Equal(t, 70, *standings[2].Progressed[0].Percent)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/list/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var detail struct {
		Rank   int              `json:"rank"`
		Level  listdomain.Level `json:"level"`
		Points float64          `json:"points"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&detail))
	assert.Equal(t, "Top", detail.Level.Name)
	assert.Equal(t, "Bob", detail.Level.Records[0].User)
	assert.Equal(t, 200.0, detail.Points)

	assert.Same(t, module.GetService(), module.service)
}

func TestModule_FetchErrorIsBadGateway(t *testing.T) {
	fsys := fstest.MapFS{"_list.json": {Data: []byte(`["ghost"]`)}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := listdb.NewLevelRepository(listdb.NewFileSource(fsys, ""), "_list.json", 1, logger, nil)

	r := chi.NewRouter()
	_, err := NewModule(context.Background(), testConfig(), repo, logger, nil, nil, nil, r)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to fetch ghost")
}

func TestModule_RunAndClose(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	module, err := NewModule(context.Background(), testConfig(), &listdb.LevelRepository{}, logger, nil, nil, nil, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go module.Run(context.Background(), &wg)

	require.Eventually(t, func() bool {
		return module.Close() == nil && waitTimeout(&wg, 10*time.Millisecond)
	}, time.Second, 10*time.Millisecond)
}

func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

func TestModule_CloseBeforeRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	module, err := NewModule(context.Background(), testConfig(), &listdb.LevelRepository{}, logger, nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, module.Close())

	var wg sync.WaitGroup
	wg.Add(1)
	go module.Run(context.Background(), &wg)

	assert.True(t, waitTimeout(&wg, time.Second), "Run should return when the module is already closed")
}
