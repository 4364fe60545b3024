package repository

import (
	"context"
	"fmt"

	"picnic-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

const reviewColumns = `id, product_id, user_id, rating, comment, hidden, created_at`

// Create inserts a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, hidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.ProductID, review.UserID, review.Rating,
		review.Comment, review.Hidden, review.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review model.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.ProductID, &review.UserID, &review.Rating,
		&review.Comment, &review.Hidden, &review.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &review, nil
}

// ListByProduct retrieves all visible reviews for a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 AND hidden = FALSE ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query product reviews")
		return nil, fmt.Errorf("failed to query product reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// ListAll retrieves a page of all reviews, newest first.
func (r *reviewRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Review, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count reviews")
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// SetHidden marks a review as hidden.
func (r *reviewRepository) SetHidden(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE reviews SET hidden = TRUE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to hide review")
		return false, fmt.Errorf("failed to hide review: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a review permanently.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return false, fmt.Errorf("failed to delete review: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func collectReviews(rows pgx.Rows) ([]model.Review, error) {
	var reviews []model.Review
	for rows.Next() {
		var review model.Review
		err := rows.Scan(
			&review.ID, &review.ProductID, &review.UserID, &review.Rating,
			&review.Comment, &review.Hidden, &review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
