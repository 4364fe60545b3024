package handler

import (
	"encoding/json"
	"net/http"

	"picnic-api/internal/auth"
	"picnic-api/internal/middleware"
	"picnic-api/internal/model"
	"picnic-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Create handles POST /api/reviews requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	userID, err := auth.CurrentUserID(middleware.ClaimsFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	var req model.ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	review, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Message: "review created", Data: review})
}

// ListByProduct handles GET /api/reviews/product/{productId} requests.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	raw := r.URL.Path[len("/api/reviews/product/"):]
	productID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid product ID format", h.logger)
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "reviews retrieved", Data: reviews})
}

// AdminList handles GET /api/reviews/admin requests.
func (h *ReviewHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	if !h.requireStrictAdmin(w, r) {
		return
	}

	query := r.URL.Query()
	page := parseIntParam(query.Get("page"), 0)
	size := parseIntParam(query.Get("size"), 10)

	resp, err := h.service.AdminList(r.Context(), page, size)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "reviews retrieved", Data: resp})
}

// AdminAction handles PUT /api/reviews/admin/action requests.
func (h *ReviewHandler) AdminAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	if !h.requireStrictAdmin(w, r) {
		return
	}

	var req model.ReviewAdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.AdminAction(r.Context(), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Message: "review action applied", Data: "OK"})
}

// requireStrictAdmin gates moderation endpoints on an exact scope match.
// Unlike the role/scope/authorities predicate used for coupon admin routes,
// this accepts only scope == "ROLE_ADMIN" verbatim (see auth.HasExactAdminScope).
func (h *ReviewHandler) requireStrictAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !auth.HasExactAdminScope(middleware.ClaimsFromContext(r.Context())) {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin scope required", h.logger)
		return false
	}
	return true
}
