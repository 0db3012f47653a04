package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const testCatalog = `
categories:
  - { id: cut, name: Cut, position: 0 }
services:
  - { id: perm, name: Perm, duration: 2 hrs, price: SGD 200, category: cut }
  - { id: trim, name: Trim, duration: 30 mins, price: SGD 30, category: cut }
promotions:
  - id: half
    title: Half off
    active: true
    coupon:
      code: HALF
      title: Half off
      discount_type: percentage
      discount_value: 50
      max_discount_amount: 60
      valid_days: 30
  - id: gone
    title: Gone
    active: false
    coupon: { code: GONE, title: Gone, discount_type: fixed, discount_value: 5, valid_days: 1 }
`

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc  *Service
	repo *repository.Repository
	kv   repository.KVRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()

	catalog, err := repository.ParseCatalog([]byte(testCatalog), log)
	require.NoError(t, err)

	kv := repository.NewMemoryKVRepository()
	repo := &repository.Repository{
		Service:   catalog,
		Promotion: catalog.Promotions(),
		KV:        kv,
		Coupon:    repository.NewCouponRepository(kv, "test-coupons", log),
	}

	cfg := &utils.Config{Booking: utils.BookingConfig{
		DaysAhead:          7,
		TimeSlots:          []string{"09:00", "10:00", "11:00"},
		SessionIdleMinutes: 30,
	}}

	svc := NewService(repo, cfg, log)
	svc.Sessions.now = func() time.Time { return testNow }
	return &fixture{svc: svc, repo: repo, kv: kv}
}

func offset(v float64) request.ScrollReport {
	return request.ScrollReport{ScrollOffset: &v}
}

func TestBooking_HappyPathWithCoupon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-1"

	claimed, err := f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	require.NoError(t, err)
	assert.True(t, claimed.IsValid)

	_, err = f.svc.Coupon.SelectCoupon(ctx, client, &request.SelectCouponRequest{CouponID: claimed.ID})
	require.NoError(t, err)

	resp, err := f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "perm", ScrollReport: offset(420)})
	require.NoError(t, err)
	assert.Equal(t, "service-selection", resp.Step)
	assert.False(t, resp.Overlay.IsAnyOpen)

	resp, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-04"})
	require.NoError(t, err)
	assert.Equal(t, "datetime-selection", resp.Step)
	assert.True(t, resp.Overlay.IsAnyOpen)
	assert.True(t, resp.Overlay.ScrollLocked)
	assert.Equal(t, 420.0, resp.Overlay.SavedScrollOffset)

	resp, err = f.svc.Booking.SetTime(ctx, client, &request.SetTimeRequest{Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "confirmation", resp.Step)
	assert.Equal(t, 200.0, resp.Quote.Subtotal)
	assert.Equal(t, 60.0, resp.Quote.Discount)
	assert.Equal(t, 140.0, resp.Quote.Total)
	assert.Equal(t, "2 hrs", resp.Quote.TotalDuration)

	resp, err = f.svc.Booking.Confirm(ctx, client, &request.BookingActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Step)
	require.NotNil(t, resp.Receipt)
	assert.Regexp(t, `^BK-20260302-\d{4}$`, resp.Receipt.BookingNumber)
	assert.Equal(t, 140.0, resp.Receipt.Quote.Total)
	require.NotNil(t, resp.Receipt.CouponCode)
	assert.Equal(t, "HALF", *resp.Receipt.CouponCode)
	assert.Nil(t, resp.SelectedCoupon)

	valid, err := f.svc.Coupon.GetValidCoupons(ctx, client)
	require.NoError(t, err)
	assert.Empty(t, valid)

	stored, err := f.repo.Coupon.LoadCoupons(ctx, client)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].IsUsed)

	resp, err = f.svc.Booking.Close(ctx, client, &request.BookingActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "initial", resp.Step)
	assert.Empty(t, resp.Services)
	assert.False(t, resp.Overlay.IsAnyOpen)
	assert.False(t, resp.Overlay.ScrollLocked)
	require.NotNil(t, resp.Overlay.RestoreScrollTo)
	assert.Equal(t, 420.0, *resp.Overlay.RestoreScrollTo)
}

func TestBooking_AdvanceFromConfirmationCompletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-adv"

	_, err := f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "trim"})
	require.NoError(t, err)
	_, err = f.svc.Booking.Advance(ctx, client, &request.BookingActionRequest{})
	require.NoError(t, err)
	_, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	_, err = f.svc.Booking.SetTime(ctx, client, &request.SetTimeRequest{Time: "09:00"})
	require.NoError(t, err)

	resp, err := f.svc.Booking.Advance(ctx, client, &request.BookingActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Step)
	require.NotNil(t, resp.Receipt)
	assert.Nil(t, resp.Receipt.CouponCode)
	assert.Equal(t, 30.0, resp.Receipt.Quote.Total)
}

func TestBooking_BackClosesOverlayAndKeepsDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-back"

	_, err := f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "trim"})
	require.NoError(t, err)
	_, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-03", ScrollReport: offset(80)})
	require.NoError(t, err)

	resp, err := f.svc.Booking.Back(ctx, client, &request.BookingActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "service-selection", resp.Step)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-03-03", *resp.Date)
	assert.False(t, resp.Overlay.IsAnyOpen)
	require.NotNil(t, resp.Overlay.RestoreScrollTo)
	assert.Equal(t, 80.0, *resp.Overlay.RestoreScrollTo)
}

func TestBooking_EdgeErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-err"

	_, err := f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "nope"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.svc.Booking.SetTime(ctx, client, &request.SetTimeRequest{Time: "23:00"})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-01"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-09"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	resp, err := f.svc.Booking.GetBooking(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, "initial", resp.Step)
}

func TestBooking_SetTimeWithoutDateIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-notime"

	_, err := f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "trim"})
	require.NoError(t, err)

	resp, err := f.svc.Booking.SetTime(ctx, client, &request.SetTimeRequest{Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "service-selection", resp.Step)
	assert.Nil(t, resp.Time)
}

func TestGetSlots(t *testing.T) {
	f := newFixture(t)

	slots := f.svc.Booking.GetSlots(context.Background())
	require.Len(t, slots.Dates, 7)
	assert.Equal(t, "2026-03-02", slots.Dates[0])
	assert.Equal(t, "2026-03-08", slots.Dates[6])
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots.TimeSlots)
}

func TestCoupon_Claim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-claim"

	_, err := f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	require.NoError(t, err)

	_, err = f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	_, err = f.svc.Coupon.ClaimCoupon(ctx, client, "gone")
	assert.ErrorIs(t, err, ErrPromotionNotFound)

	_, err = f.svc.Coupon.ClaimCoupon(ctx, client, "missing")
	assert.ErrorIs(t, err, ErrPromotionNotFound)

	promotions, err := f.svc.Catalog.GetPromotions(ctx, client)
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.True(t, promotions[0].Claimed)

	page, err := f.svc.Coupon.GetCoupons(ctx, client, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestCoupon_SelectionToggleUpdatesQuote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-select"

	c, err := f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	require.NoError(t, err)
	_, err = f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "trim"})
	require.NoError(t, err)

	sel, err := f.svc.Coupon.SelectCoupon(ctx, client, &request.SelectCouponRequest{CouponID: c.ID})
	require.NoError(t, err)
	require.NotNil(t, sel.SelectedCoupon)
	assert.Equal(t, 15.0, sel.Quote.Discount)

	sel, err = f.svc.Coupon.SelectCoupon(ctx, client, &request.SelectCouponRequest{CouponID: c.ID})
	require.NoError(t, err)
	assert.Nil(t, sel.SelectedCoupon)
	assert.Zero(t, sel.Quote.Discount)
}

func TestCoupon_LedgerSurvivesEviction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-evict"

	_, err := f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	require.NoError(t, err)
	assert.Equal(t, 1, f.svc.Sessions.Len())

	f.svc.Sessions.now = func() time.Time { return testNow.Add(time.Hour) }
	assert.Equal(t, 1, f.svc.Sessions.Sweep())
	assert.Zero(t, f.svc.Sessions.Len())

	valid, err := f.svc.Coupon.GetValidCoupons(ctx, client)
	require.NoError(t, err)
	assert.Len(t, valid, 1)
}

func TestSessions_EvictedStateIsNotReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-stale"

	_, err := f.svc.Coupon.GetValidCoupons(ctx, client)
	require.NoError(t, err)
	stale := f.svc.Sessions.lookup(client)
	require.NotNil(t, stale)

	f.svc.Sessions.now = func() time.Time { return testNow.Add(time.Hour) }
	require.Equal(t, 1, f.svc.Sessions.Sweep())

	_, err = f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	require.NoError(t, err)

	assert.False(t, f.svc.Sessions.lockLive(client, stale))
	assert.True(t, stale.mu.TryLock())
	stale.mu.Unlock()

	err = f.svc.Sessions.with(ctx, client, func(st *clientState) error {
		assert.NotSame(t, stale, st)
		assert.Len(t, st.ledger.Coupons(), 1)
		return nil
	})
	require.NoError(t, err)

	_, err = f.svc.Coupon.ClaimCoupon(ctx, client, "half")
	assert.True(t, errors.Is(err, ErrAlreadyClaimed))

	stored, err := f.repo.Coupon.LoadCoupons(ctx, client)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

type countingStore struct {
	repository.CouponRepository
	loads atomic.Int32
}

func (c *countingStore) LoadCoupons(ctx context.Context, owner string) ([]entity.Coupon, error) {
	c.loads.Add(1)
	return c.CouponRepository.LoadCoupons(ctx, owner)
}

func TestCoupon_ConcurrentClaimsOnOneClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-burst"

	store := &countingStore{CouponRepository: f.repo.Coupon}
	f.svc.Sessions.store = store

	var claimed, rejected atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := f.svc.Coupon.ClaimCoupon(ctx, client, "half")
			switch {
			case err == nil:
				claimed.Add(1)
			case errors.Is(err, ErrAlreadyClaimed):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), claimed.Load())
	assert.Equal(t, int32(7), rejected.Load())
	assert.Equal(t, int32(1), store.loads.Load())
	assert.Equal(t, 1, f.svc.Sessions.Len())

	stored, err := f.repo.Coupon.LoadCoupons(ctx, client)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

type gatedStore struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	loads   atomic.Int32
}

func (g *gatedStore) LoadCoupons(ctx context.Context, owner string) ([]entity.Coupon, error) {
	g.loads.Add(1)
	g.once.Do(func() { close(g.started) })
	<-g.release
	return nil, ctx.Err()
}

func (g *gatedStore) SaveCoupons(context.Context, string, []entity.Coupon) error {
	return nil
}

func TestSessions_HydrationOutlivesFirstCaller(t *testing.T) {
	store := &gatedStore{started: make(chan struct{}), release: make(chan struct{})}
	sessions := NewSessions(store, time.Hour, zap.NewNop())

	firstCtx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		return sessions.with(firstCtx, "client-gate", func(*clientState) error { return nil })
	})

	<-store.started
	g.Go(func() error {
		return sessions.with(context.Background(), "client-gate", func(*clientState) error { return nil })
	})

	cancel()
	close(store.release)

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), store.loads.Load())
	assert.Equal(t, 1, sessions.Len())
}

func TestCoupon_CorruptLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.kv.Put(ctx, "test-coupons:broken", []byte("not json")))

	_, err := f.svc.Coupon.GetValidCoupons(ctx, "broken")
	assert.True(t, errors.Is(err, repository.ErrCorruptLedger))
}

func TestOverlay_DismissingBookingAbandonsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-overlay"

	state, err := f.svc.Overlay.Open(ctx, client, &request.OpenOverlayRequest{Kind: "promotion", ScrollOffset: 300})
	require.NoError(t, err)
	assert.Equal(t, []string{"promotion"}, state.Stack)

	_, err = f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "trim"})
	require.NoError(t, err)
	resp, err := f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-02", ScrollReport: offset(999)})
	require.NoError(t, err)
	assert.Equal(t, []string{"promotion", "booking"}, resp.Overlay.Stack)
	assert.Equal(t, 300.0, resp.Overlay.SavedScrollOffset)

	state, err = f.svc.Overlay.Dismiss(ctx, client, &request.DismissOverlayRequest{Trigger: "escape"})
	require.NoError(t, err)
	assert.Equal(t, []string{"promotion"}, state.Stack)
	assert.Nil(t, state.RestoreScrollTo)

	booking, err := f.svc.Booking.GetBooking(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, "initial", booking.Step)

	state, err = f.svc.Overlay.Dismiss(ctx, client, &request.DismissOverlayRequest{Trigger: "backdrop"})
	require.NoError(t, err)
	assert.False(t, state.IsAnyOpen)
	require.NotNil(t, state.RestoreScrollTo)
	assert.Equal(t, 300.0, *state.RestoreScrollTo)
}

func TestOverlay_BookingCannotBeOpenedDirectly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state, err := f.svc.Overlay.Open(ctx, "client-direct", &request.OpenOverlayRequest{Kind: "booking"})
	require.NoError(t, err)
	assert.False(t, state.IsAnyOpen)
}

func TestOverlay_ClosingBelowBookingAbandonsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const client = "client-below"

	_, err := f.svc.Overlay.Open(ctx, client, &request.OpenOverlayRequest{Kind: "services"})
	require.NoError(t, err)
	_, err = f.svc.Booking.AddService(ctx, client, &request.AddServiceRequest{ServiceID: "perm"})
	require.NoError(t, err)
	_, err = f.svc.Booking.SetDate(ctx, client, &request.SetDateRequest{Date: "2026-03-05"})
	require.NoError(t, err)

	state, err := f.svc.Overlay.Close(ctx, client, &request.CloseOverlayRequest{Kind: "services"})
	require.NoError(t, err)
	assert.False(t, state.IsAnyOpen)

	booking, err := f.svc.Booking.GetBooking(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, "initial", booking.Step)
}
