package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileCatalog(t *testing.T) {
	ctx := context.Background()
	catalog, err := LoadFileCatalog("testdata/catalog.yaml", zap.NewNop())
	require.NoError(t, err)

	t.Run("services are normalized", func(t *testing.T) {
		perm, err := catalog.FindByID(ctx, "b")
		require.NoError(t, err)
		require.NotNil(t, perm)
		assert.Equal(t, 120.0, perm.Amount)
		assert.Equal(t, "SGD", perm.Currency)
		assert.Equal(t, 120, perm.DurationMinutes)

		consult, err := catalog.FindByID(ctx, "c")
		require.NoError(t, err)
		assert.Zero(t, consult.Amount)
		assert.Empty(t, consult.Currency)
	})

	t.Run("unknown service", func(t *testing.T) {
		s, err := catalog.FindByID(ctx, "zzz")
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("by category", func(t *testing.T) {
		services, err := catalog.FindByCategory(ctx, "featured")
		require.NoError(t, err)
		require.Len(t, services, 2)
		assert.Equal(t, "b", services[0].ID)
	})

	t.Run("categories sorted by position", func(t *testing.T) {
		categories, err := catalog.FindCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "featured", categories[0].ID)
	})

	t.Run("promotions", func(t *testing.T) {
		promotions := catalog.Promotions()

		active, err := promotions.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, entity.DiscountTypePercentage, active[0].Coupon.DiscountType)
		require.NotNil(t, active[0].Coupon.MaxDiscountAmount)
		assert.Equal(t, 60.0, *active[0].Coupon.MaxDiscountAmount)

		retired, err := promotions.FindByID(ctx, "p2")
		require.NoError(t, err)
		require.NotNil(t, retired)
		assert.False(t, retired.Active)
	})
}

func TestParseCatalogRejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`
services:
  - { id: x, name: One, duration: 1 hr, price: SGD 1, category: c }
  - { id: x, name: Two, duration: 1 hr, price: SGD 2, category: c }
`)
	_, err := ParseCatalog(raw, zap.NewNop())
	assert.Error(t, err)
}

func TestCouponRepository(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVRepository()
	repo := NewCouponRepository(kv, "haeyoom-coupons", zap.NewNop())

	t.Run("missing key is an empty ledger", func(t *testing.T) {
		coupons, err := repo.LoadCoupons(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, coupons)
	})

	t.Run("round trip", func(t *testing.T) {
		maxOff := 60.0
		expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		in := []entity.Coupon{{
			ID:                "c1",
			Code:              "WELCOME50",
			DiscountType:      entity.DiscountTypePercentage,
			DiscountValue:     50,
			MaxDiscountAmount: &maxOff,
			ExpiryDate:        expiry,
			PromotionID:       "p1",
		}}
		require.NoError(t, repo.SaveCoupons(ctx, "alice", in))

		out, err := repo.LoadCoupons(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "WELCOME50", out[0].Code)
		assert.True(t, out[0].ExpiryDate.Equal(expiry))
		assert.Equal(t, 60.0, *out[0].MaxDiscountAmount)

		raw, err := kv.Get(ctx, "haeyoom-coupons:alice")
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"promotionId":"p1"`)
	})

	t.Run("nil list is stored as empty array", func(t *testing.T) {
		require.NoError(t, repo.SaveCoupons(ctx, "bob", nil))
		raw, err := kv.Get(ctx, "haeyoom-coupons:bob")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("corrupt record", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "haeyoom-coupons:eve", []byte("{not json")))
		_, err := repo.LoadCoupons(ctx, "eve")
		assert.True(t, errors.Is(err, ErrCorruptLedger))
	})
}

func TestNewRepository(t *testing.T) {
	t.Run("file catalog with memory store", func(t *testing.T) {
		cfg := &utils.Config{
			Store:   utils.StoreConfig{Driver: "memory", CouponNamespace: "ns"},
			Catalog: utils.CatalogConfig{Source: "file", File: "testdata/catalog.yaml"},
		}
		repo, err := NewRepository(cfg, Backends{}, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, repo.Service)
		assert.NotNil(t, repo.Promotion)
		assert.NotNil(t, repo.Coupon)
	})

	t.Run("postgres without a pool", func(t *testing.T) {
		cfg := &utils.Config{
			Store:   utils.StoreConfig{Driver: "postgres"},
			Catalog: utils.CatalogConfig{Source: "file", File: "testdata/catalog.yaml"},
		}
		_, err := NewRepository(cfg, Backends{}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &utils.Config{
			Store:   utils.StoreConfig{Driver: "etcd"},
			Catalog: utils.CatalogConfig{Source: "file", File: "testdata/catalog.yaml"},
		}
		_, err := NewRepository(cfg, Backends{}, zap.NewNop())
		assert.Error(t, err)
	})
}
