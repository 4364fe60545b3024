package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"picnic-api/internal/model"
	"picnic-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles coupon-related HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Create handles POST /api/coupons/create requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	var req model.CouponCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "coupon code is required", h.logger)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Message: "coupon created", Data: resp})
}

// Search handles GET /api/coupons/admin requests.
func (h *CouponHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query()
	page := parseIntParam(query.Get("page"), 0)
	size := parseIntParam(query.Get("size"), 10)

	resp, err := h.service.Search(r.Context(), page, size, query.Get("search"), query.Get("status"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "coupons retrieved", Data: resp})
}

// Apply handles POST /api/coupons/apply requests. Rejected coupons still
// produce a 200: "not applicable" is a business outcome carried in the body.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	var req model.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to apply coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: resp.Message, Data: resp})
}

// Update handles PUT /api/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	var req model.CouponUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "coupon updated", Data: resp})
}

// Delete handles DELETE /api/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "coupon deleted", Data: "OK"})
}

// GetInfo handles GET /api/coupons/{code} requests.
func (h *CouponHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Path[len("/api/coupons/"):]
	if code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "coupon code is required", h.logger)
		return
	}

	resp, err := h.service.GetInfo(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "coupon retrieved", Data: resp})
}

// couponID extracts and parses the coupon id from the request path.
func (h *CouponHandler) couponID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Path[len("/api/coupons/"):]
	if raw == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "coupon ID is required", h.logger)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid coupon ID format", h.logger)
		return uuid.Nil, false
	}

	return id, true
}

// parseIntParam parses a query parameter, falling back to a default.
func parseIntParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
