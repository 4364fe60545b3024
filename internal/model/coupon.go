package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount code with a validity window, discount rule,
// and usage cap.
type Coupon struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	Description   string          `json:"description" db:"description"`
	ValidFrom     time.Time       `json:"validFrom" db:"valid_from"`
	ValidTo       time.Time       `json:"validTo" db:"valid_to"`
	DiscountValue decimal.Decimal `json:"discountValue" db:"discount_value"`
	IsPercent     bool            `json:"isPercent" db:"is_percent"`
	UsageLimit    int             `json:"usageLimit" db:"usage_limit"`
	UsedCount     int             `json:"usedCount" db:"used_count"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// CouponStatus is a derived coupon state computed against the current time
// and usage counters. It is never stored.
type CouponStatus string

const (
	// StatusActive means now is within [ValidFrom, ValidTo] and uses remain.
	StatusActive CouponStatus = "ACTIVE"
	// StatusUpcoming means the validity window has not started yet.
	StatusUpcoming CouponStatus = "UPCOMING"
	// StatusExpired means the window has passed or the usage cap is reached.
	StatusExpired CouponStatus = "EXPIRED"
)

// ParseCouponStatus normalises a status filter string. An empty string means
// no filter and returns ("", nil).
func ParseCouponStatus(s string) (CouponStatus, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	status := CouponStatus(strings.ToUpper(trimmed))
	switch status {
	case StatusActive, StatusUpcoming, StatusExpired:
		return status, nil
	default:
		return "", ErrInvalidCouponStatus
	}
}

// CouponCreateRequest is the payload for creating a coupon. Any UsedCount
// supplied by the caller is ignored; new coupons always start at zero.
type CouponCreateRequest struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       time.Time       `json:"validTo"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	IsPercent     bool            `json:"isPercent"`
	UsageLimit    int             `json:"usageLimit"`
}

// CouponUpdateRequest is the payload for updating a coupon. All fields are
// overwritten except the id and the usage counter.
type CouponUpdateRequest struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       time.Time       `json:"validTo"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	IsPercent     bool            `json:"isPercent"`
	UsageLimit    int             `json:"usageLimit"`
}

// CouponCreateResponse is returned after a successful create.
type CouponCreateResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

// CouponResponse is the read-side coupon DTO.
type CouponResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       time.Time       `json:"validTo"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	IsPercent     bool            `json:"isPercent"`
	UsageLimit    int             `json:"usageLimit"`
	UsedCount     int             `json:"usedCount"`
}

// ApplyCouponRequest is the payload for applying a coupon to an order total.
type ApplyCouponRequest struct {
	Code       string          `json:"code"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
}

// ApplyCouponResponse reports the outcome of a coupon application. A
// rejected coupon is an expected business outcome, not an error: Valid is
// false and Message carries the reason. Amount fields are only present on
// success.
type ApplyCouponResponse struct {
	Code           string           `json:"code"`
	Valid          bool             `json:"valid"`
	Message        string           `json:"message"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
	FinalTotal     *decimal.Decimal `json:"finalTotal,omitempty"`
}

// CouponPageResponse is a page of coupon DTOs with pagination metadata.
type CouponPageResponse struct {
	Content       []CouponResponse `json:"content"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	First         bool             `json:"first"`
	Last          bool             `json:"last"`
}
