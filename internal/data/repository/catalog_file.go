package repository

import (
	"context"
	"fmt"
	"os"
	"slices"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/pricing"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type catalogDocument struct {
	Categories []entity.Category  `yaml:"categories"`
	Services   []entity.Service   `yaml:"services"`
	Promotions []entity.Promotion `yaml:"promotions"`
}

// FileCatalog serves services, categories and promotions from a YAML
// document loaded once at startup.
type FileCatalog struct {
	categories []*entity.Category
	services   []*entity.Service
	promotions []*entity.Promotion
	log        *zap.Logger
}

func LoadFileCatalog(path string, log *zap.Logger) (*FileCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(raw, log)
}

func ParseCatalog(raw []byte, log *zap.Logger) (*FileCatalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &FileCatalog{log: log.With(zap.String("repository", "catalog_file"))}

	seen := make(map[string]bool, len(doc.Services))
	for i := range doc.Services {
		s := doc.Services[i]
		if s.ID == "" {
			return nil, fmt.Errorf("decode catalog: service %d has no id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("decode catalog: duplicate service id %s", s.ID)
		}
		seen[s.ID] = true

		pricing.Normalize(&s)
		c.services = append(c.services, &s)
	}

	for i := range doc.Categories {
		c.categories = append(c.categories, &doc.Categories[i])
	}
	slices.SortStableFunc(c.categories, func(a, b *entity.Category) int {
		return a.Position - b.Position
	})

	for i := range doc.Promotions {
		c.promotions = append(c.promotions, &doc.Promotions[i])
	}

	c.log.Info("Catalog loaded",
		zap.Int("services", len(c.services)),
		zap.Int("categories", len(c.categories)),
		zap.Int("promotions", len(c.promotions)),
	)
	return c, nil
}

func (c *FileCatalog) FindAll(_ context.Context) ([]*entity.Service, error) {
	return slices.Clone(c.services), nil
}

func (c *FileCatalog) FindByID(_ context.Context, id string) (*entity.Service, error) {
	for _, s := range c.services {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (c *FileCatalog) FindByCategory(_ context.Context, category string) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range c.services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *FileCatalog) FindCategories(_ context.Context) ([]*entity.Category, error) {
	return slices.Clone(c.categories), nil
}

func (c *FileCatalog) FindActive(_ context.Context) ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	for _, p := range c.promotions {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// Promotions adapts the catalog to PromotionRepository, whose FindByID
// collides with the service lookup.
func (c *FileCatalog) Promotions() PromotionRepository {
	return filePromotions{c}
}

type filePromotions struct {
	*FileCatalog
}

func (p filePromotions) FindByID(_ context.Context, id string) (*entity.Promotion, error) {
	for _, promo := range p.promotions {
		if promo.ID == id {
			cp := *promo
			return &cp, nil
		}
	}
	return nil, nil
}
