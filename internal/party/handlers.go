package party

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes REST endpoints for the customer and supplier directories.
type Handler struct {
	Service *Service
}

// ListCustomers handles GET /api/v1/customers.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	page, limit := common.ParsePagination(r, 20)
	rows, total, err := h.Service.ListCustomers(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), page, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       rows,
		"pagination": common.Pagination{Page: page, PerPage: limit, TotalItems: int(total)},
	})
}

// GetCustomer handles GET /api/v1/customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	row, err := h.Service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": row})
}

// CreateCustomer handles POST /api/v1/customers.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var in CustomerInput
	if err := common.DecodeAndValidate(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	row, err := h.Service.CreateCustomer(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": row})
}

// UpdateCustomer handles PUT /api/v1/customers/{id}.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var in CustomerInput
	if err := common.DecodeAndValidate(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	row, err := h.Service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": row})
}

// DeleteCustomer handles DELETE /api/v1/customers/{id}.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	if err := h.Service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSuppliers handles GET /api/v1/suppliers.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	page, limit := common.ParsePagination(r, 20)
	rows, total, err := h.Service.ListSuppliers(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), page, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       rows,
		"pagination": common.Pagination{Page: page, PerPage: limit, TotalItems: int(total)},
	})
}

// GetSupplier handles GET /api/v1/suppliers/{id}.
func (h *Handler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	row, err := h.Service.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": row})
}

// CreateSupplier handles POST /api/v1/suppliers.
func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var in SupplierInput
	if err := common.DecodeAndValidate(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	row, err := h.Service.CreateSupplier(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": row})
}

// UpdateSupplier handles PUT /api/v1/suppliers/{id}.
func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var in SupplierInput
	if err := common.DecodeAndValidate(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	row, err := h.Service.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": row})
}

// DeleteSupplier handles DELETE /api/v1/suppliers/{id}.
func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	if err := h.Service.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "party service not configured", nil)
		return false
	}
	return true
}
