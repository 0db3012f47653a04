package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceRepository serves the salon's service menu. Returned services have
// their structured price and duration filled in.
type ServiceRepository interface {
	FindAll(ctx context.Context) ([]*entity.Service, error)
	FindByID(ctx context.Context, id string) (*entity.Service, error)
	FindByCategory(ctx context.Context, category string) ([]*entity.Service, error)
	FindCategories(ctx context.Context) ([]*entity.Category, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, name, duration, price, category, description, female_only, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Duration,
		&s.Price,
		&s.Category,
		&s.Description,
		&s.FemaleOnly,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pricing.Normalize(&s)
	return &s, nil
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE deleted_at IS NULL ORDER BY id`
	return r.queryServices(ctx, "find all services", query)
}

func (r *serviceRepository) FindByCategory(ctx context.Context, category string) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE category = $1 AND deleted_at IS NULL ORDER BY id`
	return r.queryServices(ctx, "find services by category", query, category)
}

func (r *serviceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id),
		)
		return nil, fmt.Errorf("find service by id: %w", err)
	}

	return s, nil
}

func (r *serviceRepository) FindCategories(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT id, name, position FROM categories ORDER BY position, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *serviceRepository) queryServices(ctx context.Context, op, query string, args ...any) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}
