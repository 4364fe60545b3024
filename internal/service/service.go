package service

import (
	"context"

	"picnic-api/internal/model"

	"github.com/google/uuid"
)

// CouponService defines operations for coupon management and application.
type CouponService interface {
	// Apply validates a coupon against its time window and usage cap and
	// computes the discounted total. Rejections are reported in the
	// response, not as errors.
	Apply(ctx context.Context, req *model.ApplyCouponRequest) (*model.ApplyCouponResponse, error)

	// Create creates a new coupon with a zero usage counter.
	Create(ctx context.Context, req *model.CouponCreateRequest) (*model.CouponCreateResponse, error)

	// Update overwrites all coupon fields except id and usage counter.
	Update(ctx context.Context, id uuid.UUID, req *model.CouponUpdateRequest) (*model.CouponResponse, error)

	// Delete removes a coupon permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search retrieves a page of coupons filtered by keyword and status.
	Search(ctx context.Context, page, size int, keyword, status string) (*model.CouponPageResponse, error)

	// GetInfo retrieves a coupon DTO by its code.
	GetInfo(ctx context.Context, code string) (*model.CouponResponse, error)
}

// ReviewService defines operations for product reviews and moderation.
type ReviewService interface {
	// Create creates a review on behalf of the given user.
	Create(ctx context.Context, userID int64, req *model.ReviewCreateRequest) (*model.Review, error)

	// ListByProduct retrieves visible reviews for a product.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)

	// AdminList retrieves a page of all reviews, hidden included.
	AdminList(ctx context.Context, page, size int) (*model.ReviewPageResponse, error)

	// AdminAction hides or deletes a review.
	AdminAction(ctx context.Context, req *model.ReviewAdminActionRequest) error
}
