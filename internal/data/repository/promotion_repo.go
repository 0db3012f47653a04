package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromotionRepository interface {
	FindActive(ctx context.Context) ([]*entity.Promotion, error)
	FindByID(ctx context.Context, id string) (*entity.Promotion, error)
}

type promotionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromotionRepository(db database.PgxIface, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `
	id, title, message, image, active,
	coupon_code, coupon_title, coupon_description,
	discount_type, discount_value, min_order_amount, max_discount_amount, valid_days,
	created_at, updated_at`

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Message,
		&p.Image,
		&p.Active,
		&p.Coupon.Code,
		&p.Coupon.Title,
		&p.Coupon.Description,
		&p.Coupon.DiscountType,
		&p.Coupon.DiscountValue,
		&p.Coupon.MinOrderAmount,
		&p.Coupon.MaxDiscountAmount,
		&p.Coupon.ValidDays,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) FindActive(ctx context.Context) ([]*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE active = TRUE ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active promotions", zap.Error(err))
		return nil, fmt.Errorf("find active promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*entity.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			r.log.Error("Failed to scan promotion row", zap.Error(err))
			return nil, fmt.Errorf("scan promotion row: %w", err)
		}
		promotions = append(promotions, p)
	}

	return promotions, rows.Err()
}

func (r *promotionRepository) FindByID(ctx context.Context, id string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	p, err := scanPromotion(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion by ID",
			zap.Error(err),
			zap.String("promotion_id", id),
		)
		return nil, fmt.Errorf("find promotion by id: %w", err)
	}

	return p, nil
}
