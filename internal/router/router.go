package router

import (
	"net/http"
	"strings"

	"picnic-api/internal/auth"
	"picnic-api/internal/handler"
	"picnic-api/internal/middleware"

	"github.com/rs/zerolog"
)

// PublicPrefixes are the request paths served without authentication.
var PublicPrefixes = []string{
	"/health",
	"/api/reviews/product/",
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	couponHandler *handler.CouponHandler,
	reviewHandler *handler.ReviewHandler,
	verifier *auth.Verifier,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	adminOnly := middleware.RequireAdmin(logger)

	// Fixed coupon routes take precedence over the {id}/{code} subtree.
	mux.Handle("/api/coupons/create", adminOnly(http.HandlerFunc(couponHandler.Create)))
	mux.Handle("/api/coupons/admin", adminOnly(http.HandlerFunc(couponHandler.Search)))
	mux.HandleFunc("/api/coupons/apply", couponHandler.Apply)

	// Remaining coupon routes dispatch on method: PUT/DELETE address a
	// coupon by id (admin), GET addresses it by code (any authenticated user).
	mux.HandleFunc("/api/coupons/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			adminOnly(http.HandlerFunc(couponHandler.Update)).ServeHTTP(w, r)
		case http.MethodDelete:
			adminOnly(http.HandlerFunc(couponHandler.Delete)).ServeHTTP(w, r)
		case http.MethodGet:
			couponHandler.GetInfo(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Review routes. Moderation endpoints gate themselves on the strict
	// admin scope check inside the handler.
	mux.HandleFunc("/api/reviews", reviewHandler.Create)
	mux.HandleFunc("/api/reviews/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/reviews/product/"):
			reviewHandler.ListByProduct(w, r)
		case r.URL.Path == "/api/reviews/admin":
			reviewHandler.AdminList(w, r)
		case r.URL.Path == "/api/reviews/admin/action":
			reviewHandler.AdminAction(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> JWTAuth
	var h http.Handler = mux
	h = middleware.JWTAuth(verifier, PublicPrefixes, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
