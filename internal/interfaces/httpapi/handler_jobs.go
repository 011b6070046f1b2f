package httpapi

import (
	"net/http"
)

type sweepResultDTO struct {
	Total     int `json:"total"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// SweepStatuses re-derives the lifecycle status of every league from its
// dates. Invoked periodically by the scheduler, not by end users.
func (h *Handler) SweepStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SweepStatuses")
	defer span.End()

	result, err := h.sweepService.Sweep(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "status sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "status sweep finished",
		"total", result.Total,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	writeSuccess(ctx, w, http.StatusOK, sweepResultDTO{
		Total:     result.Total,
		Updated:   result.Updated,
		Unchanged: result.Unchanged,
		Failed:    result.Failed,
	})
}
