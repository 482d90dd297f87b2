package pos

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes POS sessions over HTTP.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// Open handles POST /pos/sessions.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.service.Open()})
}

// Get handles GET /pos/sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	view, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Close handles DELETE /pos/sessions/{id}.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	if err := h.service.Close(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddItem handles POST /pos/sessions/{id}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req addItemRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.service.AddItem(r.Context(), chi.URLParam(r, "id"), strings.TrimSpace(req.ProductID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

type updateItemRequest struct {
	Delta    *int `json:"delta" validate:"omitempty,min=-2147483648,max=2147483647"`
	Quantity *int `json:"quantity" validate:"omitempty,min=0,max=2147483647"`
}

// UpdateItem handles PATCH /pos/sessions/{id}/items/{productId}. The body carries
// either a relative delta or an absolute quantity.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req updateItemRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if (req.Delta == nil) == (req.Quantity == nil) {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "exactly one of delta or quantity is required", nil)
		return
	}
	sessionID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productId")
	var (
		view View
		err  error
	)
	if req.Delta != nil {
		view, err = h.service.ChangeQuantity(sessionID, productID, *req.Delta)
	} else {
		view, err = h.service.SetQuantity(sessionID, productID, *req.Quantity)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// RemoveItem handles DELETE /pos/sessions/{id}/items/{productId}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	view, err := h.service.RemoveItem(chi.URLParam(r, "id"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Adjust handles PUT /pos/sessions/{id}/adjustments.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req Adjustments
	if err := common.DecodeAndValidate(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.service.Adjust(chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Clear handles POST /pos/sessions/{id}/clear.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	view, err := h.service.Clear(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

type checkoutRequest struct {
	CustomerID    *string `json:"customerId" validate:"omitempty,uuid"`
	PaymentMethod string  `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer qris"`
}

// Checkout handles POST /pos/sessions/{id}/checkout. An empty body is accepted.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req checkoutRequest
	if err := common.DecodeOptional(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	sale, view, err := h.service.Checkout(r.Context(), chi.URLParam(r, "id"), CheckoutInput{
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"sale":    sale,
			"session": view,
		},
	})
}

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.service == nil || h.service.Sessions == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pos service not configured", nil)
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var stockErr *StockLimitError
	var subErr *SubmissionError
	switch {
	case errors.As(err, &stockErr):
		common.JSONError(w, http.StatusConflict, "STOCK_LIMIT", "quantity exceeds available stock", map[string]any{
			"productId": stockErr.ProductID,
			"stock":     stockErr.Stock,
			"requested": stockErr.Requested,
		})
	case errors.Is(err, ErrEmptyCart):
		common.JSONError(w, http.StatusUnprocessableEntity, "EMPTY_CART", "cart is empty", nil)
	case errors.Is(err, ErrSubmissionInFlight):
		common.JSONError(w, http.StatusConflict, "CHECKOUT_IN_PROGRESS", "checkout already in progress", nil)
	case errors.As(err, &subErr):
		common.JSONError(w, http.StatusBadGateway, "SUBMISSION_FAILED", "sale could not be recorded; cart preserved", submissionCause(subErr.Err))
	case errors.Is(err, ErrSessionNotFound):
		common.JSONError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "pos session not found", nil)
	case errors.Is(err, ErrLineNotFound):
		common.JSONError(w, http.StatusNotFound, "LINE_NOT_FOUND", "product is not in the cart", nil)
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found", nil)
	default:
		common.WriteError(w, err)
	}
}

func submissionCause(err error) map[string]any {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		cause := map[string]any{"code": appErr.Code, "message": appErr.Message}
		if appErr.Details != nil {
			cause["details"] = appErr.Details
		}
		return map[string]any{"cause": cause}
	}
	return map[string]any{"cause": map[string]any{"message": err.Error()}}
}
