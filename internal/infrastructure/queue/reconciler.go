package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/api/metrics"
	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

const (
	defaultWorkers   = 4
	defaultBatchSize = 50
	defaultInterval  = 30 * time.Second
	channelBuffer    = 64
)

// Guard abstracts the in-flight claim store (Redis) that keeps overlapping
// sweeps from pushing the same order twice.
type Guard interface {
	Acquire(ctx context.Context, orderID string) (bool, error)
	Release(ctx context.Context, orderID string) error
}

// Reconciler drains locally-captured orders back to the remote backend. The
// submit path deliberately swallows remote write failures; this is the
// explicit follow-up sync for those orders. Orders are routed to a fixed set
// of workers by consistent hashing on the order id, so retries of one order
// never interleave.
type Reconciler struct {
	workers   []chan *domain.Order
	repo      ports.OrderRepository
	remote    ports.RemoteData
	guard     Guard
	log       zerolog.Logger
	interval  time.Duration
	batchSize int
}

// Config tunes the reconciler. Zero values fall back to defaults.
type Config struct {
	Workers   int
	Interval  time.Duration
	BatchSize int
}

func NewReconciler(repo ports.OrderRepository, remote ports.RemoteData, guard Guard, cfg Config, log zerolog.Logger) *Reconciler {
	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	r := &Reconciler{
		workers:   make([]chan *domain.Order, numWorkers),
		repo:      repo,
		remote:    remote,
		guard:     guard,
		log:       log,
		interval:  interval,
		batchSize: batchSize,
	}
	for i := range r.workers {
		r.workers[i] = make(chan *domain.Order, channelBuffer)
	}
	return r
}

// Start launches the sweep loop and all worker goroutines. Everything stops
// when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
	go r.runSweeper(ctx)
}

func (r *Reconciler) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep picks up captured orders and fans them out to the workers.
func (r *Reconciler) sweep(ctx context.Context) {
	orders, err := r.repo.ListCaptured(ctx, r.batchSize)
	if err != nil {
		r.log.Error().Err(err).Msg("reconcile sweep failed")
		return
	}
	for _, o := range orders {
		idx := r.shardIndex(o.OrderID)
		select {
		case r.workers[idx] <- o:
			metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
		default:
			// Worker backlog full: the order stays captured and the next
			// sweep picks it up again.
		}
	}
}

// shardIndex maps an order id deterministically to a worker index.
func (r *Reconciler) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Reconciler) runWorker(ctx context.Context, id int, ch <-chan *domain.Order) {
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-ch:
			if !ok {
				return
			}
			r.push(ctx, order)
			metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

// push attempts one remote write for a captured order.
func (r *Reconciler) push(ctx context.Context, order *domain.Order) {
	if r.guard != nil {
		ok, err := r.guard.Acquire(ctx, order.OrderID)
		if err != nil {
			r.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("sync guard check failed, pushing anyway")
		} else if !ok {
			metrics.OrdersReconciledTotal.WithLabelValues("skipped_inflight").Inc()
			return
		}
	}

	// A previous push may have reached the remote backend without the local
	// mark landing. Check before inserting so the remote table never holds
	// the same order twice.
	exists, err := r.remote.OrderExists(ctx, order.OrderID)
	if err == nil && exists {
		if err := r.repo.MarkSynced(ctx, order.OrderID, "", time.Now().UTC()); err != nil {
			r.log.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to mark already-remote order synced")
		}
		metrics.OrdersReconciledTotal.WithLabelValues("already_remote").Inc()
		return
	}

	record, err := r.remote.CreateOrder(ctx, order)
	if err != nil {
		metrics.RemoteWriteFailuresTotal.WithLabelValues("reconcile").Inc()
		metrics.OrdersReconciledTotal.WithLabelValues("failed").Inc()
		r.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("reconcile push failed")
		if r.guard != nil {
			if relErr := r.guard.Release(ctx, order.OrderID); relErr != nil {
				r.log.Debug().Err(relErr).Str("order_id", order.OrderID).Msg("sync guard release failed")
			}
		}
		return
	}

	if err := r.repo.MarkSynced(ctx, order.OrderID, record.ID, time.Now().UTC()); err != nil {
		r.log.Error().Err(err).Str("order_id", order.OrderID).Msg("remote push succeeded but local mark failed")
		return
	}

	metrics.OrdersReconciledTotal.WithLabelValues("synced").Inc()
	r.log.Info().Str("order_id", order.OrderID).Msg("order reconciled to remote backend")
}
