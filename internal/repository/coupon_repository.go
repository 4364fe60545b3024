package repository

import (
	"context"
	"fmt"
	"time"

	"picnic-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, description, valid_from, valid_to, discount_value, is_percent, usage_limit, used_count, created_at, updated_at`

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, description, valid_from, valid_to, discount_value, is_percent, usage_limit, used_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.ValidFrom, coupon.ValidTo,
		coupon.DiscountValue, coupon.IsPercent, coupon.UsageLimit, coupon.UsedCount,
		coupon.CreatedAt, coupon.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to insert coupon")
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	return nil
}

// GetByCode retrieves a coupon by its exact code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := r.scanOne(ctx, query, code)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon by code")
		return nil, fmt.Errorf("failed to query coupon by code: %w", err)
	}

	return coupon, nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	coupon, err := r.scanOne(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon by id")
		return nil, fmt.Errorf("failed to query coupon by id: %w", err)
	}

	return coupon, nil
}

// Update overwrites all coupon fields except the id and used_count.
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, description = $3, valid_from = $4, valid_to = $5,
			discount_value = $6, is_percent = $7, usage_limit = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.ValidFrom, coupon.ValidTo,
		coupon.DiscountValue, coupon.IsPercent, coupon.UsageLimit, coupon.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", coupon.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

// Delete removes a coupon permanently.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ConsumeUsage atomically increments used_count while it is below
// usage_limit. The condition and the increment execute as one statement, so
// two concurrent applications of the last remaining use cannot both succeed.
func (r *couponRepository) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND used_count < usage_limit
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to consume coupon usage")
		return false, fmt.Errorf("failed to consume coupon usage: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Search retrieves a page of coupons filtered by keyword and derived status.
func (r *couponRepository) Search(ctx context.Context, keyword string, status model.CouponStatus, now time.Time, limit, offset int) ([]model.Coupon, int64, error) {
	filter := `
		WHERE ($1 = '' OR code ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		AND (
			$2 = ''
			OR ($2 = 'ACTIVE' AND $3 BETWEEN valid_from AND valid_to AND used_count < usage_limit)
			OR ($2 = 'UPCOMING' AND $3 < valid_from)
			OR ($2 = 'EXPIRED' AND ($3 > valid_to OR used_count >= usage_limit))
		)
	`

	var total int64
	countQuery := `SELECT COUNT(*) FROM coupons ` + filter
	if err := r.pool.QueryRow(ctx, countQuery, keyword, string(status), now).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count coupons")
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	pageQuery := `SELECT ` + couponColumns + ` FROM coupons ` + filter + `
		ORDER BY valid_to DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, pageQuery, keyword, string(status), now, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, 0, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, 0, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, total, nil
}

// scanOne runs a single-row query and maps pgx.ErrNoRows to (nil, nil).
func (r *couponRepository) scanOne(ctx context.Context, query string, arg any) (*model.Coupon, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	coupon, err := scanCoupon(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func scanCoupon(row pgx.Row) (model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID, &c.Code, &c.Description, &c.ValidFrom, &c.ValidTo,
		&c.DiscountValue, &c.IsPercent, &c.UsageLimit, &c.UsedCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
