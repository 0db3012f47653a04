package repository

import (
	"fmt"

	"salon-booking/pkg/database"
	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Service   ServiceRepository
	Promotion PromotionRepository
	KV        KVRepository
	Coupon    CouponRepository
}

// Backends carries the connections opened at startup. Either may be nil when
// the configuration does not need it.
type Backends struct {
	DB    database.PgxIface
	Redis *redis.Client
}

func NewRepository(cfg *utils.Config, backends Backends, log *zap.Logger) (*Repository, error) {
	repo := &Repository{}

	switch cfg.Catalog.Source {
	case "postgres":
		if backends.DB == nil {
			return nil, fmt.Errorf("catalog source postgres: no database connection")
		}
		repo.Service = NewServiceRepository(backends.DB, log)
		repo.Promotion = NewPromotionRepository(backends.DB, log)
	case "file":
		catalog, err := LoadFileCatalog(cfg.Catalog.File, log)
		if err != nil {
			return nil, err
		}
		repo.Service = catalog
		repo.Promotion = catalog.Promotions()
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	switch cfg.Store.Driver {
	case "postgres":
		if backends.DB == nil {
			return nil, fmt.Errorf("store driver postgres: no database connection")
		}
		repo.KV = NewKVRepository(backends.DB, log)
	case "redis":
		if backends.Redis == nil {
			return nil, fmt.Errorf("store driver redis: no redis client")
		}
		repo.KV = NewRedisKVRepository(backends.Redis, log)
	case "memory":
		repo.KV = NewMemoryKVRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	repo.Coupon = NewCouponRepository(repo.KV, cfg.Store.CouponNamespace, log)
	return repo, nil
}
