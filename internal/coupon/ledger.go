// Package coupon holds the claimed-coupon ledger of one client and the
// discount arithmetic applied at booking confirmation.
package coupon

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"salon-booking/internal/data/entity"

	"go.uber.org/zap"
)

// Store persists the full coupon list of an owner.
type Store interface {
	LoadCoupons(ctx context.Context, owner string) ([]entity.Coupon, error)
	SaveCoupons(ctx context.Context, owner string, coupons []entity.Coupon) error
}

type Option func(*Ledger)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger is not safe for concurrent use; callers serialize access per owner.
type Ledger struct {
	owner      string
	store      Store
	log        *zap.Logger
	now        func() time.Time
	coupons    []entity.Coupon
	selectedID string
}

func NewLedger(owner string, store Store, log *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		owner: owner,
		store: store,
		log:   log.With(zap.String("ledger", owner)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory coupons with the persisted ones. A missing
// record leaves the ledger empty.
func (l *Ledger) Load(ctx context.Context) error {
	coupons, err := l.store.LoadCoupons(ctx, l.owner)
	if err != nil {
		return fmt.Errorf("load coupons: %w", err)
	}

	l.coupons = coupons
	l.selectedID = ""

	l.log.Debug("Coupon ledger loaded", zap.Int("count", len(coupons)))
	return nil
}

// Claim appends c as an unused coupon unless the promotion already has a live
// one. It reports whether the coupon was added.
func (l *Ledger) Claim(ctx context.Context, c entity.Coupon) (bool, error) {
	if l.HasLiveCoupon(c.PromotionID) {
		l.log.Debug("Claim ignored, promotion already has a live coupon",
			zap.String("promotion_id", c.PromotionID))
		return false, nil
	}

	c.IsUsed = false
	l.coupons = append(l.coupons, c)

	if err := l.persist(ctx); err != nil {
		l.coupons = l.coupons[:len(l.coupons)-1]
		return false, err
	}

	l.log.Info("Coupon claimed",
		zap.String("coupon_id", c.ID),
		zap.String("promotion_id", c.PromotionID),
		zap.Time("expiry_date", c.ExpiryDate),
	)
	return true, nil
}

// HasLiveCoupon reports whether an unused, unexpired coupon exists for the promotion.
func (l *Ledger) HasLiveCoupon(promotionID string) bool {
	now := l.now()
	return slices.ContainsFunc(l.coupons, func(c entity.Coupon) bool {
		return c.PromotionID == promotionID && c.IsValidAt(now)
	})
}

// Select toggles the selected coupon: the current id clears it, another
// valid id replaces it and "" clears unconditionally. Unknown, used or
// expired ids are ignored.
func (l *Ledger) Select(id string) {
	switch {
	case id == "":
		l.selectedID = ""
	case id == l.selectedID:
		l.selectedID = ""
	default:
		c := l.find(id)
		if c == nil || !c.IsValidAt(l.now()) {
			return
		}
		l.selectedID = id
	}
}

func (l *Ledger) ClearSelection() {
	l.selectedID = ""
}

// Selected returns the selected coupon, or nil.
func (l *Ledger) Selected() *entity.Coupon {
	if l.selectedID == "" {
		return nil
	}
	c := l.find(l.selectedID)
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Consume marks the coupon used and drops it from the selection. Consuming an
// unknown or already used coupon changes nothing.
func (l *Ledger) Consume(ctx context.Context, id string) error {
	c := l.find(id)
	if c == nil || c.IsUsed {
		return nil
	}

	prevSelected := l.selectedID
	c.IsUsed = true
	if l.selectedID == id {
		l.selectedID = ""
	}

	if err := l.persist(ctx); err != nil {
		c.IsUsed = false
		l.selectedID = prevSelected
		return err
	}

	l.log.Info("Coupon consumed", zap.String("coupon_id", id))
	return nil
}

// ValidCoupons yields unused, unexpired coupons in claim order. Every range
// over the sequence re-evaluates the ledger against the clock.
func (l *Ledger) ValidCoupons() iter.Seq[entity.Coupon] {
	return func(yield func(entity.Coupon) bool) {
		now := l.now()
		for _, c := range l.coupons {
			if !c.IsValidAt(now) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Coupons returns a copy of every claimed coupon in claim order.
func (l *Ledger) Coupons() []entity.Coupon {
	return slices.Clone(l.coupons)
}

func (l *Ledger) find(id string) *entity.Coupon {
	for i := range l.coupons {
		if l.coupons[i].ID == id {
			return &l.coupons[i]
		}
	}
	return nil
}

func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SaveCoupons(ctx, l.owner, l.coupons); err != nil {
		l.log.Error("Failed to persist coupons", zap.Error(err))
		return fmt.Errorf("save coupons: %w", err)
	}
	return nil
}
