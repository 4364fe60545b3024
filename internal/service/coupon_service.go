package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"picnic-api/internal/model"
	"picnic-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Application outcome messages. These are part of the API contract.
const (
	MsgCouponNotFound = "coupon does not exist"
	MsgCouponExpired  = "coupon expired or not yet valid"
	MsgUsageLimitHit  = "coupon usage limit reached"
	MsgCouponApplied  = "coupon applied successfully"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var hundred = decimal.NewFromInt(100)

// couponService implements CouponService.
type couponService struct {
	repo   repository.CouponRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(repo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		repo:   repo,
		logger: logger.With().Str("service", "coupon").Logger(),
		now:    time.Now,
	}
}

// Apply validates a coupon and computes the discounted total. The checks run
// in a fixed order and stop at the first failure: existence, validity
// window (inclusive at both ends), usage cap. On the success path one use is
// consumed through an atomic conditional update; losing that race surfaces
// as the usage-limit outcome, so used_count can never exceed usage_limit.
func (s *couponService) Apply(ctx context.Context, req *model.ApplyCouponRequest) (*model.ApplyCouponResponse, error) {
	resp := &model.ApplyCouponResponse{Code: req.Code}

	coupon, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", req.Code).Msg("failed to look up coupon")
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if coupon == nil {
		resp.Message = MsgCouponNotFound
		return resp, nil
	}

	now := s.now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidTo) {
		resp.Message = MsgCouponExpired
		return resp, nil
	}

	if coupon.UsedCount >= coupon.UsageLimit {
		resp.Message = MsgUsageLimitHit
		return resp, nil
	}

	discount := discountAmount(coupon, req.OrderTotal)
	finalTotal := req.OrderTotal.Sub(discount)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}
	finalTotal = finalTotal.Round(2)

	consumed, err := s.repo.ConsumeUsage(ctx, coupon.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("code", req.Code).Msg("failed to consume coupon usage")
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if !consumed {
		// A concurrent application took the last remaining use between our
		// read and the conditional update.
		s.logger.Debug().Str("code", req.Code).Msg("coupon usage exhausted by concurrent application")
		resp.Message = MsgUsageLimitHit
		return resp, nil
	}

	s.logger.Info().
		Str("code", req.Code).
		Str("discount", discount.String()).
		Str("final_total", finalTotal.String()).
		Msg("coupon applied")

	resp.Valid = true
	resp.Message = MsgCouponApplied
	resp.DiscountAmount = &discount
	resp.FinalTotal = &finalTotal
	return resp, nil
}

// Create creates a new coupon. The usage counter always starts at zero
// regardless of the request.
func (s *couponService) Create(ctx context.Context, req *model.CouponCreateRequest) (*model.CouponCreateResponse, error) {
	if req.ValidFrom.After(req.ValidTo) {
		return nil, model.ErrCouponWindowInverted
	}

	existing, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("code", req.Code).Msg("coupon code already exists")
		return nil, model.ErrCouponCodeExists
	}

	now := s.now()
	coupon := &model.Coupon{
		ID:            uuid.New(),
		Code:          req.Code,
		Description:   req.Description,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		DiscountValue: req.DiscountValue,
		IsPercent:     req.IsPercent,
		UsageLimit:    req.UsageLimit,
		UsedCount:     0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info().Str("code", coupon.Code).Str("coupon_id", coupon.ID.String()).Msg("coupon created")

	return &model.CouponCreateResponse{
		ID:        coupon.ID,
		Code:      coupon.Code,
		CreatedAt: coupon.CreatedAt,
	}, nil
}

// Update overwrites all coupon fields except id and used_count. A changed
// code (case-insensitive compare) is re-checked for uniqueness.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponUpdateRequest) (*model.CouponResponse, error) {
	if req.ValidFrom.After(req.ValidTo) {
		return nil, model.ErrCouponWindowInverted
	}

	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	if !strings.EqualFold(coupon.Code, req.Code) {
		existing, err := s.repo.GetByCode(ctx, req.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to update coupon: %w", err)
		}
		if existing != nil {
			s.logger.Warn().Str("code", req.Code).Msg("coupon code already exists")
			return nil, model.ErrCouponCodeExists
		}
	}

	coupon.Code = req.Code
	coupon.Description = req.Description
	coupon.ValidFrom = req.ValidFrom
	coupon.ValidTo = req.ValidTo
	coupon.DiscountValue = req.DiscountValue
	coupon.IsPercent = req.IsPercent
	coupon.UsageLimit = req.UsageLimit
	coupon.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon updated")

	dto := toCouponResponse(coupon)
	return &dto, nil
}

// Delete removes a coupon permanently.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if !deleted {
		return model.ErrCouponNotFound
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")
	return nil
}

// Search retrieves a page of coupons filtered by keyword and status.
func (s *couponService) Search(ctx context.Context, page, size int, keyword, status string) (*model.CouponPageResponse, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	statusFilter, err := model.ParseCouponStatus(status)
	if err != nil {
		return nil, err
	}

	coupons, total, err := s.repo.Search(ctx, strings.TrimSpace(keyword), statusFilter, s.now(), size, page*size)
	if err != nil {
		return nil, fmt.Errorf("failed to search coupons: %w", err)
	}

	content := make([]model.CouponResponse, len(coupons))
	for i := range coupons {
		content[i] = toCouponResponse(&coupons[i])
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &model.CouponPageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

// GetInfo retrieves a coupon DTO by its code.
func (s *couponService) GetInfo(ctx context.Context, code string) (*model.CouponResponse, error) {
	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon info: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	dto := toCouponResponse(coupon)
	return &dto, nil
}

// discountAmount computes the discount for the given order total. Percentage
// coupons round half away from zero at two decimal places; flat coupons
// discount their face value regardless of the total.
func discountAmount(coupon *model.Coupon, orderTotal decimal.Decimal) decimal.Decimal {
	if coupon.IsPercent {
		amount := orderTotal.Mul(coupon.DiscountValue).Div(hundred)
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		return amount.Round(2)
	}
	return coupon.DiscountValue.Round(2)
}

func toCouponResponse(c *model.Coupon) model.CouponResponse {
	return model.CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		Description:   c.Description,
		ValidFrom:     c.ValidFrom,
		ValidTo:       c.ValidTo,
		DiscountValue: c.DiscountValue,
		IsPercent:     c.IsPercent,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
	}
}
