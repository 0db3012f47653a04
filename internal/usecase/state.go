package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salon-booking/internal/booking"
	"salon-booking/internal/coupon"
	"salon-booking/internal/data/entity"
	"salon-booking/internal/overlay"
	"salon-booking/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const hydrateTimeout = 10 * time.Second

// clientState is everything one browser client owns. mu serializes every
// request of the client so each mutation runs to completion.
type clientState struct {
	mu       sync.Mutex
	id       string
	workflow *booking.Workflow
	ledger   *coupon.Ledger
	overlays *overlay.Coordinator
	surface  *overlay.ReportedSurface
	receipt  *entity.BookingReceipt
	lastSeen time.Time
}

// Sessions holds the in-memory state of active clients. Coupon ledgers are
// hydrated from the store the first time a client is seen.
type Sessions struct {
	mu      sync.Mutex
	clients map[string]*clientState
	group   singleflight.Group
	store   coupon.Store
	idle    time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewSessions(store coupon.Store, idle time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{
		clients: make(map[string]*clientState),
		store:   store,
		idle:    idle,
		now:     time.Now,
		log:     log.With(zap.String("service", "sessions")),
	}
}

// with runs fn holding the client's lock.
func (s *Sessions) with(ctx context.Context, clientID string, fn func(st *clientState) error) error {
	st, err := s.acquire(ctx, clientID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	return fn(st)
}

func (s *Sessions) acquire(ctx context.Context, clientID string) (*clientState, error) {
	for {
		st, err := s.load(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if s.lockLive(clientID, st) {
			return st, nil
		}
	}
}

// load returns the registered state of the client, hydrating it once when
// the client is new.
func (s *Sessions) load(ctx context.Context, clientID string) (*clientState, error) {
	if st := s.lookup(clientID); st != nil {
		return st, nil
	}

	// Hydration is shared by every waiter and outlives the first caller.
	hydrateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hydrateTimeout)
	defer cancel()

	v, err, _ := s.group.Do(clientID, func() (any, error) {
		if existing := s.lookup(clientID); existing != nil {
			return existing, nil
		}

		fresh, err := s.hydrate(hydrateCtx, clientID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.clients[clientID] = fresh
		metrics.ActiveClients.Set(float64(len(s.clients)))
		s.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*clientState), nil
}

// lockLive locks st and reports whether it is still the registered state of
// the client. A state evicted before the lock was taken is released again.
func (s *Sessions) lockLive(clientID string, st *clientState) bool {
	st.mu.Lock()

	s.mu.Lock()
	live := s.clients[clientID] == st
	if live {
		st.lastSeen = s.now()
	}
	s.mu.Unlock()

	if !live {
		st.mu.Unlock()
	}
	return live
}

func (s *Sessions) lookup(clientID string) *clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients[clientID]
}

func (s *Sessions) hydrate(ctx context.Context, clientID string) (*clientState, error) {
	ledger := coupon.NewLedger(clientID, s.store, s.log, coupon.WithClock(s.now))
	if err := ledger.Load(ctx); err != nil {
		s.log.Error("Failed to hydrate client state",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		return nil, fmt.Errorf("hydrate client %s: %w", clientID, err)
	}

	surface := overlay.NewReportedSurface()
	st := &clientState{
		id:       clientID,
		workflow: booking.NewWorkflow(),
		ledger:   ledger,
		overlays: overlay.NewCoordinator(surface, s.log.With(zap.String("client_id", clientID))),
		surface:  surface,
		lastSeen: s.now(),
	}

	s.log.Debug("Client state created",
		zap.String("client_id", clientID),
		zap.Int("coupons", len(ledger.Coupons())),
	)
	return st, nil
}

// Sweep evicts clients idle for longer than the configured duration and
// returns how many were dropped. Clients busy with a request are skipped.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, st := range s.clients {
		if !st.mu.TryLock() {
			continue
		}
		if st.lastSeen.Before(cutoff) {
			delete(s.clients, id)
			evicted++
		}
		st.mu.Unlock()
	}

	metrics.ActiveClients.Set(float64(len(s.clients)))
	if evicted > 0 {
		s.log.Info("Evicted idle clients", zap.Int("count", evicted))
	}
	return evicted
}

// Run sweeps idle clients until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context) {
	interval := max(s.idle/2, time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
