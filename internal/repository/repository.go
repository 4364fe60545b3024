package repository

import (
	"context"
	"time"

	"picnic-api/internal/model"

	"github.com/google/uuid"
)

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// Create inserts a new coupon.
	Create(ctx context.Context, coupon *model.Coupon) error

	// GetByCode retrieves a coupon by its exact code. Returns (nil, nil)
	// when no coupon matches.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByID retrieves a coupon by its ID. Returns (nil, nil) when no
	// coupon matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// Update overwrites all coupon fields except the id and used_count.
	Update(ctx context.Context, coupon *model.Coupon) error

	// Delete removes a coupon permanently. Returns false when the id is
	// unknown.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ConsumeUsage atomically increments used_count, but only while it is
	// below usage_limit. Returns false when the limit is already reached,
	// in which case nothing was changed. This single conditional update is
	// what keeps used_count <= usage_limit under concurrent applications.
	ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error)

	// Search retrieves a page of coupons filtered by an optional
	// case-insensitive keyword (code or description substring) and an
	// optional derived status evaluated against now. Results are sorted by
	// valid_to descending. The second return value is the unpaged total.
	Search(ctx context.Context, keyword string, status model.CouponStatus, now time.Time, limit, offset int) ([]model.Coupon, int64, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *model.Review) error

	// GetByID retrieves a review by its ID. Returns (nil, nil) when no
	// review matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// ListByProduct retrieves all visible reviews for a product, newest
	// first. Hidden reviews are excluded.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)

	// ListAll retrieves a page of all reviews (hidden included), newest
	// first. The second return value is the unpaged total.
	ListAll(ctx context.Context, limit, offset int) ([]model.Review, int64, error)

	// SetHidden marks a review as hidden. Returns false when the id is
	// unknown.
	SetHidden(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete removes a review permanently. Returns false when the id is
	// unknown.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
