package api

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// handleCron runs one reminder sweep. An external scheduler calls this
// every minute; the in-process dispatcher covers deployments without
// one.
func (h *Handler) handleCron(w http.ResponseWriter, r *http.Request) {
	result, err := h.dispatcher.RunOnce(r.Context())
	if err != nil {
		h.logger.Error("cron sweep failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	if result.Processed == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":      true,
			"message": "No pending reminders",
			"count":   0,
		})
		return
	}

	resp := map[string]interface{}{
		"ok":      true,
		"message": fmt.Sprintf("Processed %d reminders", result.Processed),
		"sent":    result.Sent,
	}
	if len(result.Errors) > 0 {
		resp["errors"] = result.Errors
	}
	writeJSON(w, http.StatusOK, resp)
}
