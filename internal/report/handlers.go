package report

import (
	"net/http"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes report read endpoints.
type Handler struct {
	Svc *Service
}

func (h *Handler) rangeFrom(w http.ResponseWriter, r *http.Request) (common.TimeRange, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORTS_NOT_CONFIGURED", "report service not configured", nil)
		return common.TimeRange{}, false
	}
	days := h.Svc.DefaultRange
	if days <= 0 {
		days = 30
	}
	rng, err := common.ParseTimeRange(r, h.Svc.now(), days)
	if err != nil {
		common.WriteError(w, err)
		return common.TimeRange{}, false
	}
	return rng, true
}

// Summary handles GET /api/v1/reports/summary?from=&to=.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.Summary(r.Context(), rng)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Daily handles GET /api/v1/reports/daily?from=&to=.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.Daily(r.Context(), rng)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// TopProducts handles GET /api/v1/reports/top-products?limit=.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.rangeFrom(w, r)
	if !ok {
		return
	}
	limit := common.AtoiDefault(r.URL.Query().Get("limit"), 10)
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := h.Svc.TopProducts(r.Context(), rng, int32(limit))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}
