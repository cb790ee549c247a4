package httpx

import (
	"log/slog"
	"net/http"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
	apperrors "github.com/crakhack/crakhack-web/internal/errors"
)

// AnalyticsHandlers serves the analytics JSON API.
type AnalyticsHandlers struct {
	Analytics AnalyticsReader
	Storage   StorageReader
	Logger    *slog.Logger
}

func (h *AnalyticsHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Summary handles GET /api/analytics?days=&target=.
func (h *AnalyticsHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := analytics.ClampDays(q.Get("days"))
	target := analytics.ParseTarget(q.Get("target"))

	summary, err := h.Analytics.Summary(r.Context(), target, days)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// storageErrorBody is the r2-stats error shape: {"error": msg, "status": upstream status}.
type storageErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// StorageStats handles GET /api/r2-stats?days=.
func (h *AnalyticsHandlers) StorageStats(w http.ResponseWriter, r *http.Request) {
	days := analytics.ClampDays(r.URL.Query().Get("days"))

	stats, err := h.Storage.Stats(r.Context(), days)
	if err == nil {
		WriteJSON(w, http.StatusOK, stats)
		return
	}

	status := DetermineErrorStatus(err)
	h.logger().WarnContext(r.Context(), "storage stats failed",
		"days", days,
		"status", status,
		"error", err,
		"request_id", RequestIDFromContext(r.Context()),
	)

	body := storageErrorBody{Error: userMessage(err)}
	if apperrors.IsUpstream(err) {
		body.Status = apperrors.GetStatus(err)
		if body.Status == 0 {
			body.Status = http.StatusBadGateway
		}
	}
	WriteJSON(w, status, body)
}
