package listhandlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"github.com/nats-io/nats.go"
)

// CorrelationIDHeader carries a request's correlation id over HTTP and NATS.
const CorrelationIDHeader = "X-Correlation-ID"

// Reply is the envelope of every NATS response.
type Reply struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	Code  int    `json:"code"`
}

// HandleNATSList replies with every level in rank order.
func (h *ListHandlers) HandleNATSList(msg *nats.Msg) {
	ctx := natsContext(msg)
	h.respond(ctx, msg, h.listReply(ctx))
}

// HandleNATSLeaderboard replies with every player standing.
func (h *ListHandlers) HandleNATSLeaderboard(msg *nats.Msg) {
	ctx := natsContext(msg)
	h.respond(ctx, msg, h.leaderboardReply(ctx))
}

// HandleNATSPlayer replies with the standing of the player named in the body.
func (h *ListHandlers) HandleNATSPlayer(msg *nats.Msg) {
	ctx := natsContext(msg)
	h.respond(ctx, msg, h.playerReply(ctx, strings.TrimSpace(string(msg.Data))))
}

func (h *ListHandlers) listReply(ctx context.Context) Reply {
	levels, err := h.service.FetchList(ctx)
	return newReply(levels, err)
}

func (h *ListHandlers) leaderboardReply(ctx context.Context) Reply {
	standings, err := h.service.FetchLeaderboard(ctx)
	return newReply(standings, err)
}

func (h *ListHandlers) playerReply(ctx context.Context, user string) Reply {
	if user == "" {
		return Reply{Error: "player id is required", Code: 400}
	}
	position, err := h.service.GetPlayer(ctx, user)
	return newReply(position, err)
}

func newReply(data any, err error) Reply {
	if err != nil {
		return Reply{Error: err.Error(), Code: statusFor(err)}
	}
	return Reply{Data: data, Code: 200}
}

func (h *ListHandlers) respond(ctx context.Context, msg *nats.Msg, reply Reply) {
	if reply.Error != "" && reply.Code >= 500 {
		h.logger.ErrorContext(ctx, "NATS request failed",
			"subject", msg.Subject,
			"correlation_id", observability.CorrelationID(ctx),
			"error", reply.Error,
		)
	}

	data, err := json.Marshal(reply)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to marshal NATS reply", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		h.logger.ErrorContext(ctx, "Failed to respond to NATS request",
			"subject", msg.Subject,
			"error", err,
		)
	}
}

func natsContext(msg *nats.Msg) context.Context {
	ctx := context.Background()
	if msg.Header != nil {
		if id := msg.Header.Get(CorrelationIDHeader); id != "" {
			ctx = observability.WithCorrelationID(ctx, id)
		}
	}
	return ctx
}
