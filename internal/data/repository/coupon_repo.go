package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"

	"go.uber.org/zap"
)

// ErrCorruptLedger is returned when a stored coupon record cannot be decoded.
var ErrCorruptLedger = errors.New("corrupt coupon ledger")

// CouponRepository stores each owner's full coupon list as one JSON array
// under "<namespace>:<owner>".
type CouponRepository interface {
	LoadCoupons(ctx context.Context, owner string) ([]entity.Coupon, error)
	SaveCoupons(ctx context.Context, owner string, coupons []entity.Coupon) error
}

type couponRepository struct {
	kv        KVRepository
	namespace string
	log       *zap.Logger
}

func NewCouponRepository(kv KVRepository, namespace string, log *zap.Logger) CouponRepository {
	return &couponRepository{
		kv:        kv,
		namespace: namespace,
		log:       log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) key(owner string) string {
	return r.namespace + ":" + owner
}

func (r *couponRepository) LoadCoupons(ctx context.Context, owner string) ([]entity.Coupon, error) {
	raw, err := r.kv.Get(ctx, r.key(owner))
	if err != nil {
		return nil, fmt.Errorf("load coupons for %s: %w", owner, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var coupons []entity.Coupon
	if err := json.Unmarshal(raw, &coupons); err != nil {
		r.log.Error("Stored coupon ledger is unreadable",
			zap.Error(err),
			zap.String("owner", owner),
		)
		return nil, fmt.Errorf("%w for %s: %v", ErrCorruptLedger, owner, err)
	}

	return coupons, nil
}

func (r *couponRepository) SaveCoupons(ctx context.Context, owner string, coupons []entity.Coupon) error {
	if coupons == nil {
		coupons = []entity.Coupon{}
	}

	raw, err := json.Marshal(coupons)
	if err != nil {
		return fmt.Errorf("encode coupons for %s: %w", owner, err)
	}

	if err := r.kv.Put(ctx, r.key(owner), raw); err != nil {
		return fmt.Errorf("save coupons for %s: %w", owner, err)
	}

	r.log.Debug("Coupon ledger saved",
		zap.String("owner", owner),
		zap.Int("count", len(coupons)),
	)
	return nil
}
