package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"picnic-api/internal/auth"
	"picnic-api/internal/middleware"
	"picnic-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, userID int64, req *model.ReviewCreateRequest) (*model.Review, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) AdminList(ctx context.Context, page, size int) (*model.ReviewPageResponse, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewPageResponse), args.Error(1)
}

func (m *MockReviewService) AdminAction(ctx context.Context, req *model.ReviewAdminActionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var reviewTestSecret = []byte("test-secret")

// authenticated wraps a handler in the JWT middleware and returns a request
// factory that attaches a token signed over the given claims.
func authenticated(h http.HandlerFunc, claims jwt.MapClaims, t *testing.T) (http.Handler, func(*http.Request)) {
	t.Helper()
	verifier := auth.NewVerifier(reviewTestSecret, "")
	wrapped := middleware.JWTAuth(verifier, nil, zerolog.Nop())(h)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(reviewTestSecret)
	require.NoError(t, err)

	return wrapped, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+raw)
	}
}

func TestReviewHandler_Create(t *testing.T) {
	t.Run("Success with user from token", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		productID := uuid.New()
		mockSvc.On("Create", mock.Anything, int64(42), mock.MatchedBy(func(r *model.ReviewCreateRequest) bool {
			return r.ProductID == productID && r.Rating == 5
		})).Return(&model.Review{ID: uuid.New(), ProductID: productID, UserID: 42, Rating: 5}, nil)

		handler, withToken := authenticated(h.Create, jwt.MapClaims{"userId": "42"}, t)

		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			jsonBody(t, map[string]any{"productId": productID, "rating": 5, "comment": "great"}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Claims without user identifier are rejected", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		handler, withToken := authenticated(h.Create, jwt.MapClaims{"role": "user"}, t)

		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			jsonBody(t, map[string]any{"productId": uuid.New(), "rating": 5}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid rating maps to 400", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		mockSvc.On("Create", mock.Anything, int64(42), mock.Anything).Return(nil, model.ErrInvalidRating)

		handler, withToken := authenticated(h.Create, jwt.MapClaims{"userId": "42"}, t)

		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			jsonBody(t, map[string]any{"productId": uuid.New(), "rating": 9}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeInvalidRating, resp.Error)
	})
}

func TestReviewHandler_ListByProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		productID := uuid.New()
		mockSvc.On("ListByProduct", mock.Anything, productID).
			Return([]model.Review{{ID: uuid.New(), ProductID: productID}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/reviews/product/"+productID.String(), nil)
		rec := httptest.NewRecorder()
		h.ListByProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("No reviews yields empty array", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		productID := uuid.New()
		mockSvc.On("ListByProduct", mock.Anything, productID).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/reviews/product/"+productID.String(), nil)
		rec := httptest.NewRecorder()
		h.ListByProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []model.Review `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
	})

	t.Run("Invalid product id", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/reviews/product/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		h.ListByProduct(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReviewHandler_AdminEndpointsRequireExactScope(t *testing.T) {
	// Moderation endpoints accept only scope == "ROLE_ADMIN" verbatim. A role
	// claim that satisfies the coupon admin check is not enough here.
	tests := []struct {
		name         string
		claims       jwt.MapClaims
		expectedCode int
	}{
		{
			name:         "Exact scope passes",
			claims:       jwt.MapClaims{"scope": "ROLE_ADMIN"},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Role admin alone is rejected",
			claims:       jwt.MapClaims{"role": "admin"},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Scope with extra tokens is rejected",
			claims:       jwt.MapClaims{"scope": "read ROLE_ADMIN"},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockReviewService)
			h := NewReviewHandler(mockSvc, zerolog.Nop())

			mockSvc.On("AdminList", mock.Anything, 0, 10).
				Return(&model.ReviewPageResponse{Content: []model.Review{}}, nil).Maybe()

			handler, withToken := authenticated(h.AdminList, tt.claims, t)

			req := httptest.NewRequest(http.MethodGet, "/api/reviews/admin", nil)
			withToken(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestReviewHandler_AdminAction(t *testing.T) {
	adminClaims := jwt.MapClaims{"scope": "ROLE_ADMIN"}

	t.Run("Hide action applied", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		reviewID := uuid.New()
		mockSvc.On("AdminAction", mock.Anything, mock.MatchedBy(func(r *model.ReviewAdminActionRequest) bool {
			return r.ReviewID == reviewID && r.Action == model.ReviewActionHide
		})).Return(nil)

		handler, withToken := authenticated(h.AdminAction, adminClaims, t)

		req := httptest.NewRequest(http.MethodPut, "/api/reviews/admin/action",
			jsonBody(t, map[string]any{"reviewId": reviewID, "action": "HIDE"}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown review maps to 404", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		mockSvc.On("AdminAction", mock.Anything, mock.Anything).Return(model.ErrReviewNotFound)

		handler, withToken := authenticated(h.AdminAction, adminClaims, t)

		req := httptest.NewRequest(http.MethodPut, "/api/reviews/admin/action",
			jsonBody(t, map[string]any{"reviewId": uuid.New(), "action": "DELETE"}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unknown action maps to 400", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		h := NewReviewHandler(mockSvc, zerolog.Nop())

		mockSvc.On("AdminAction", mock.Anything, mock.Anything).Return(model.ErrInvalidReviewAction)

		handler, withToken := authenticated(h.AdminAction, adminClaims, t)

		req := httptest.NewRequest(http.MethodPut, "/api/reviews/admin/action",
			jsonBody(t, map[string]any{"reviewId": uuid.New(), "action": "ARCHIVE"}))
		withToken(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
