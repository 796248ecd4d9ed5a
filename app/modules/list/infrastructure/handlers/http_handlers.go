package listhandlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HandleGetList responds with every level in rank order.
func (h *ListHandlers) HandleGetList(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.FetchList(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, levels)
}

// HandleGetLevel responds with the level at the {rank} URL parameter.
func (h *ListHandlers) HandleGetLevel(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "rank must be an integer"})
		return
	}

	detail, err := h.service.GetLevel(r.Context(), rank)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, detail)
}

// HandleGetLeaderboard responds with every player standing.
func (h *ListHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.FetchLeaderboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, standings)
}

// HandleGetPlayer responds with the standing of the {user} URL parameter.
func (h *ListHandlers) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	position, err := h.service.GetPlayer(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, position)
}

// HandleExportLeaderboard responds with the XLSX export as an attachment.
func (h *ListHandlers) HandleExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportLeaderboard(r.Context(), &buf); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write export", "error", err)
	}
}

// HandlePointsChart responds with the points chart PNG.
func (h *ListHandlers) HandlePointsChart(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.RenderPointsChart(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write chart", "error", err)
	}
}

// HandleHealth reports liveness.
func (h *ListHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write health response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *ListHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	h.writeJSON(w, r, status, errorBody{Error: err.Error()})
}

func (h *ListHandlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to encode response", "error", err)
	}
}
