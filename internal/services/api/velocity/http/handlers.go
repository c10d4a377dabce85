// Package http provides http transport for velocity
package http

import (
	stdhttp "net/http"

	"ranksignal/internal/modkit/httpkit"
	"ranksignal/internal/services/api/velocity/domain"
	svc "ranksignal/internal/services/api/velocity/service"
)

// Register mounts velocity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// idempotent daily ingest
	httpkit.PostJSON[domain.RecordInput](r, "/record", h.record)

	// windowed history ascending by date
	httpkit.PostJSON[domain.WindowInput](r, "/history", h.history)

	// window statistics
	httpkit.PostJSON[domain.WindowInput](r, "/stats", h.stats)

	// z-score outliers on the net change series
	httpkit.PostJSON[domain.WindowInput](r, "/anomalies", h.anomalies)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /velocity/record Velocity velocityRecord
// @Summary Record one day of backlink velocity for a domain
// @Tags Velocity
// @Accept json
// @Produce json
// @Param payload body domain.RecordInput true "Daily fact"
// @Success 200 {object} domain.RecordResult "ok"
// @Router /velocity/record [post]
func (h *handlers) record(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	return h.svc.Record(r.Context(), in)
}

// swagger:route POST /velocity/history Velocity velocityHistory
// @Summary Velocity history for a trailing window
// @Tags Velocity
// @Accept json
// @Produce json
// @Param payload body domain.WindowInput true "Query"
// @Success 200 {array} domain.Fact "ok"
// @Router /velocity/history [post]
func (h *handlers) history(r *stdhttp.Request, in domain.WindowInput) (any, error) {
	return h.svc.History(r.Context(), in)
}

// swagger:route POST /velocity/stats Velocity velocityStats
// @Summary Window statistics over velocity history
// @Tags Velocity
// @Accept json
// @Produce json
// @Param payload body domain.WindowInput true "Query"
// @Success 200 {object} domain.Stats "ok"
// @Router /velocity/stats [post]
func (h *handlers) stats(r *stdhttp.Request, in domain.WindowInput) (any, error) {
	return h.svc.Stats(r.Context(), in)
}

// swagger:route POST /velocity/anomalies Velocity velocityAnomalies
// @Summary Statistically unusual days in the window
// @Tags Velocity
// @Accept json
// @Produce json
// @Param payload body domain.WindowInput true "Query"
// @Success 200 {array} domain.Anomaly "ok"
// @Router /velocity/anomalies [post]
func (h *handlers) anomalies(r *stdhttp.Request, in domain.WindowInput) (any, error) {
	return h.svc.Anomalies(r.Context(), in)
}
