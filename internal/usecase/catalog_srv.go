package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	GetServices(ctx context.Context, category *string) ([]response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetPromotions(ctx context.Context, clientID string) ([]response.PromotionResponse, error)
}

type catalogService struct {
	repo     *repository.Repository
	sessions *Sessions
	log      *zap.Logger
}

func NewCatalogService(repo *repository.Repository, sessions *Sessions, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:     repo,
		sessions: sessions,
		log:      log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetServices(ctx context.Context, category *string) ([]response.ServiceResponse, error) {
	var (
		services []*entity.Service
		err      error
	)
	if category != nil && *category != "" {
		services, err = s.repo.Service.FindByCategory(ctx, *category)
	} else {
		services, err = s.repo.Service.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to get services",
			zap.Error(err),
			zap.Stringp("category", category),
		)
		return nil, fmt.Errorf("get services: %w", err)
	}

	out := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, toServiceResponse(svc))
	}
	return out, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to get service", zap.Error(err), zap.String("service_id", serviceID))
		return nil, fmt.Errorf("get service %s: %w", serviceID, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}

	resp := toServiceResponse(svc)
	return &resp, nil
}

func (s *catalogService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Service.FindCategories(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	out := make([]response.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, response.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// GetPromotions lists active promotions, flagging the ones the client
// already holds a live coupon for.
func (s *catalogService) GetPromotions(ctx context.Context, clientID string) ([]response.PromotionResponse, error) {
	promotions, err := s.repo.Promotion.FindActive(ctx)
	if err != nil {
		s.log.Error("Failed to get promotions", zap.Error(err))
		return nil, fmt.Errorf("get promotions: %w", err)
	}

	var claimed map[string]bool
	err = s.sessions.with(ctx, clientID, func(st *clientState) error {
		claimed = liveCouponPromotions(st, promotions)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get promotions: %w", err)
	}

	out := make([]response.PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		out = append(out, toPromotionResponse(p, claimed[p.ID]))
	}
	return out, nil
}
