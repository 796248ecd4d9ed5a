package listrouter

import (
	"net/http"
	"sync"

	listhandlers "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/handlers"
	"github.com/nats-io/nats.go"
)

// ------------------------
// Fake Handlers
// ------------------------

type FakeHandlers struct {
	mu    sync.Mutex
	trace []string
}

func (f *FakeHandlers) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeHandlers) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeHandlers) http(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.record(name)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *FakeHandlers) HandleGetList(w http.ResponseWriter, r *http.Request) {
	f.http("GetList")(w, r)
}

func (f *FakeHandlers) HandleGetLevel(w http.ResponseWriter, r *http.Request) {
	f.http("GetLevel")(w, r)
}

func (f *FakeHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	f.http("GetLeaderboard")(w, r)
}

func (f *FakeHandlers) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	f.http("GetPlayer")(w, r)
}

func (f *FakeHandlers) HandleExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	f.http("ExportLeaderboard")(w, r)
}

func (f *FakeHandlers) HandlePointsChart(w http.ResponseWriter, r *http.Request) {
	f.http("PointsChart")(w, r)
}

func (f *FakeHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	f.http("Health")(w, r)
}

func (f *FakeHandlers) HandleNATSList(msg *nats.Msg) {
	f.record("NATSList")
	msg.Respond([]byte("list"))
}

func (f *FakeHandlers) HandleNATSLeaderboard(msg *nats.Msg) {
	f.record("NATSLeaderboard")
	msg.Respond([]byte("leaderboard"))
}

func (f *FakeHandlers) HandleNATSPlayer(msg *nats.Msg) {
	f.record("NATSPlayer")
	msg.Respond(append([]byte("player:"), msg.Data...))
}

var _ listhandlers.Handlers = (*FakeHandlers)(nil)
