package listhandlers

import (
	"net/http"

	"github.com/nats-io/nats.go"
)

// Handlers serves the list over HTTP and NATS request/reply.
type Handlers interface {
	// HTTP
	HandleGetList(w http.ResponseWriter, r *http.Request)
	HandleGetLevel(w http.ResponseWriter, r *http.Request)
	HandleGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleGetPlayer(w http.ResponseWriter, r *http.Request)
	HandleExportLeaderboard(w http.ResponseWriter, r *http.Request)
	HandlePointsChart(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)

	// NATS
	HandleNATSList(msg *nats.Msg)
	HandleNATSLeaderboard(msg *nats.Msg)
	HandleNATSPlayer(msg *nats.Msg)
}
