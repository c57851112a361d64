package api

import (
	"net/http"

	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

// Health сообщает, готов ли сервер обслуживать запросы.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Log.Sugar().Warnw("health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}
