package service

import (
	"context"
	"fmt"
	"time"

	"picnic-api/internal/model"
	"picnic-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	repo   repository.ReviewRepository
	logger zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		logger: logger.With().Str("service", "review").Logger(),
	}
}

// Create creates a review on behalf of the given user.
func (s *reviewService) Create(ctx context.Context, userID int64, req *model.ReviewCreateRequest) (*model.Review, error) {
	if req.ProductID == uuid.Nil {
		return nil, fmt.Errorf("product ID is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", req.ProductID.String()).
		Int64("user_id", userID).
		Msg("review created")

	return review, nil
}

// ListByProduct retrieves visible reviews for a product.
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AdminList retrieves a page of all reviews, hidden included.
func (s *reviewService) AdminList(ctx context.Context, page, size int) (*model.ReviewPageResponse, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	reviews, total, err := s.repo.ListAll(ctx, size, page*size)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &model.ReviewPageResponse{
		Content:       reviews,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

// AdminAction hides or deletes a review.
func (s *reviewService) AdminAction(ctx context.Context, req *model.ReviewAdminActionRequest) error {
	review, err := s.repo.GetByID(ctx, req.ReviewID)
	if err != nil {
		return fmt.Errorf("failed to apply review action: %w", err)
	}
	if review == nil {
		return model.ErrReviewNotFound
	}

	switch req.Action {
	case model.ReviewActionHide:
		if _, err := s.repo.SetHidden(ctx, req.ReviewID); err != nil {
			return fmt.Errorf("failed to hide review: %w", err)
		}
	case model.ReviewActionDelete:
		if _, err := s.repo.Delete(ctx, req.ReviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
	default:
		return model.ErrInvalidReviewAction
	}

	s.logger.Info().
		Str("review_id", req.ReviewID.String()).
		Str("action", string(req.Action)).
		Msg("review moderation action applied")

	return nil
}
