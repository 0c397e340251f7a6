package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newStubRepo(orders ...*domain.Order) *stubRepo {
	r := &stubRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.OrderID] = &clone
	}
	return r
}

func (r *stubRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *o
	r.orders[o.OrderID] = &clone
	return nil
}

func (r *stubRepo) FindByOrderID(_ context.Context, orderID, _ string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubRepo) FindByIdempotencyKey(_ context.Context, _ string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *stubRepo) ListCaptured(_ context.Context, limit int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.SyncStatus != domain.SyncCaptured {
			continue
		}
		clone := *o
		out = append(out, &clone)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubRepo) MarkSynced(_ context.Context, orderID, remoteID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.SyncStatus = domain.SyncSynced
	o.RemoteID = remoteID
	o.SyncedAt = &at
	return nil
}

func (r *stubRepo) List(_ context.Context, _ ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	return nil, 0, nil
}

func (r *stubRepo) status(orderID string) domain.SyncStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[orderID].SyncStatus
}

type stubRemote struct {
	mu          sync.Mutex
	existing    map[string]bool
	createErr   error
	createCalls int
}

func (s *stubRemote) CreateOrder(_ context.Context, o *domain.Order) (*ports.RemoteOrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &ports.RemoteOrderRecord{ID: "remote-" + o.OrderID, OrderID: o.OrderID}, nil
}

func (s *stubRemote) OrderExists(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[orderID], nil
}

func (s *stubRemote) ListOrders(_ context.Context) ([]domain.Order, error)       { return nil, nil }
func (s *stubRemote) StockLevels(_ context.Context) ([]domain.StockLevel, error) { return nil, nil }
func (s *stubRemote) GetProfile(_ context.Context, _, _ string) (*domain.Profile, error) {
	return nil, nil
}
func (s *stubRemote) UpdateProfile(_ context.Context, _, _ string, _ map[string]string) (*domain.Profile, error) {
	return nil, nil
}

type stubGuard struct {
	mu       sync.Mutex
	claimed  map[string]bool
	releases int
}

func newStubGuard() *stubGuard {
	return &stubGuard{claimed: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, orderID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed[orderID] {
		return false, nil
	}
	g.claimed[orderID] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, orderID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.claimed, orderID)
	g.releases++
	return nil
}

func capturedOrder(id string) *domain.Order {
	return &domain.Order{
		OrderID:    id,
		FullName:   "Ram Shrestha",
		Phone:      "9812345678",
		Email:      "a@b.com",
		AmountNPR:  domain.AmountNPR,
		SyncStatus: domain.SyncCaptured,
		CreatedAt:  time.Now().UTC(),
	}
}

func newTestReconciler(repo *stubRepo, remote *stubRemote, guard Guard) *Reconciler {
	return NewReconciler(repo, remote, guard, Config{Workers: 2}, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestPush_SyncsCapturedOrder(t *testing.T) {
	repo := newStubRepo(capturedOrder("AIQB-A1"))
	remote := &stubRemote{}
	r := newTestReconciler(repo, remote, newStubGuard())

	order, _ := repo.FindByOrderID(context.Background(), "AIQB-A1", "")
	r.push(context.Background(), order)

	if repo.status("AIQB-A1") != domain.SyncSynced {
		t.Fatalf("order not marked synced")
	}
	if remote.createCalls != 1 {
		t.Fatalf("expected one remote write, got %d", remote.createCalls)
	}
}

// When the order already landed remotely on a previous attempt, the push
// marks it synced without inserting a duplicate row.
func TestPush_AlreadyRemoteSkipsInsert(t *testing.T) {
	repo := newStubRepo(capturedOrder("AIQB-A1"))
	remote := &stubRemote{existing: map[string]bool{"AIQB-A1": true}}
	r := newTestReconciler(repo, remote, newStubGuard())

	order, _ := repo.FindByOrderID(context.Background(), "AIQB-A1", "")
	r.push(context.Background(), order)

	if repo.status("AIQB-A1") != domain.SyncSynced {
		t.Fatalf("order not marked synced")
	}
	if remote.createCalls != 0 {
		t.Fatalf("must not insert a duplicate, got %d writes", remote.createCalls)
	}
}

func TestPush_FailureKeepsCapturedAndReleasesGuard(t *testing.T) {
	repo := newStubRepo(capturedOrder("AIQB-A1"))
	remote := &stubRemote{createErr: errors.New("supabase down")}
	guard := newStubGuard()
	r := newTestReconciler(repo, remote, guard)

	order, _ := repo.FindByOrderID(context.Background(), "AIQB-A1", "")
	r.push(context.Background(), order)

	if repo.status("AIQB-A1") != domain.SyncCaptured {
		t.Fatalf("failed push must leave the order captured")
	}
	if guard.releases != 1 {
		t.Fatalf("guard must be released for the next attempt, releases=%d", guard.releases)
	}
}

func TestPush_InflightClaimSkips(t *testing.T) {
	repo := newStubRepo(capturedOrder("AIQB-A1"))
	remote := &stubRemote{}
	guard := newStubGuard()
	if _, err := guard.Acquire(context.Background(), "AIQB-A1"); err != nil {
		t.Fatalf("seed claim: %v", err)
	}
	r := newTestReconciler(repo, remote, guard)

	order, _ := repo.FindByOrderID(context.Background(), "AIQB-A1", "")
	r.push(context.Background(), order)

	if remote.createCalls != 0 {
		t.Fatalf("claimed order must be skipped, got %d writes", remote.createCalls)
	}
	if repo.status("AIQB-A1") != domain.SyncCaptured {
		t.Fatalf("skipped order must stay captured")
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	r := newTestReconciler(newStubRepo(), &stubRemote{}, nil)

	first := r.shardIndex("AIQB-A1")
	for i := 0; i < 10; i++ {
		if r.shardIndex("AIQB-A1") != first {
			t.Fatalf("shard index must be stable")
		}
	}
	if first < 0 || first >= len(r.workers) {
		t.Fatalf("shard index out of range: %d", first)
	}
}

// End to end through Start: a captured order picked up by the sweeper lands
// remotely and is marked synced.
func TestReconciler_SweepToSync(t *testing.T) {
	repo := newStubRepo(capturedOrder("AIQB-A1"), capturedOrder("AIQB-B2"))
	remote := &stubRemote{}
	r := NewReconciler(repo, remote, newStubGuard(), Config{Workers: 2, Interval: 20 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if repo.status("AIQB-A1") == domain.SyncSynced && repo.status("AIQB-B2") == domain.SyncSynced {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("orders never reconciled: %s %s", repo.status("AIQB-A1"), repo.status("AIQB-B2"))
		}
		time.Sleep(10 * time.Millisecond)
	}
}
