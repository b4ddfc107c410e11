package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api/metrics"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

const (
	defaultWorkers  = 4
	defaultAttempts = 5
	channelBuffer   = 256
	baseBackoff     = 200 * time.Millisecond
	maxBackoff      = 10 * time.Second
)

// Reconciler retries audit entries whose write failed after the mutation they
// describe had already been persisted. Entries are sharded by entity id so the
// trail of one record is written in the order it was produced.
//
// An entry that cannot be written is never discarded silently: it is logged
// in full so an operator can restore it.
type Reconciler struct {
	workers  []chan domain.AuditEntry
	repo     ports.AuditRepository
	attempts int
	logger   zerolog.Logger
	sleep    func(ctx context.Context, d time.Duration) bool

	mu      sync.RWMutex
	closed  bool
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// NewReconciler creates a Reconciler with numWorkers sharded workers, each
// trying an entry up to attempts times. Non-positive values use defaults.
func NewReconciler(numWorkers, attempts int, repo ports.AuditRepository, logger zerolog.Logger) *Reconciler {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	r := &Reconciler{
		workers:  make([]chan domain.AuditEntry, numWorkers),
		repo:     repo,
		attempts: attempts,
		logger:   logger,
		sleep:    sleepCtx,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Once ctx is cancelled workers stop
// writing and log each remaining entry as dropped; they exit after Stop.
func (r *Reconciler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	for i, ch := range r.workers {
		r.running.Add(1)
		go func() {
			defer r.running.Done()
			r.runWorker(ctx, i, ch)
		}()
	}
}

// Stop refuses new entries and waits for the workers to drain their queues.
// If ctx expires first, the workers are cancelled and every entry still
// queued is logged as dropped before Stop returns ctx's error.
func (r *Reconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	for _, ch := range r.workers {
		close(ch)
	}
	cancel := r.cancel
	r.mu.Unlock()

	if cancel == nil {
		// Never started: nothing will consume the buffers.
		for i, ch := range r.workers {
			for entry := range ch {
				r.drop(i, entry, "audit reconciler stopped before start, entry dropped")
			}
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// Enqueue hands entry to the worker owning its entity. It never blocks: when
// the worker's buffer is full, or the reconciler is stopped, the entry is
// logged in full and dropped.
func (r *Reconciler) Enqueue(entry domain.AuditEntry) {
	idx := r.shardIndex(entry.EntityID)
	metrics.AuditWriteFailuresTotal.WithLabelValues(string(entry.Action)).Inc()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		metrics.AuditReconcileTotal.WithLabelValues("dropped").Inc()
		r.logEntry(r.logger.Error(), entry).Int("worker_id", idx).Msg("audit reconciler stopped, entry dropped")
		return
	}
	select {
	case r.workers[idx] <- entry:
		metrics.AuditReconcileQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditReconcileTotal.WithLabelValues("dropped").Inc()
		r.logEntry(r.logger.Error(), entry).Int("worker_id", idx).Msg("audit reconcile queue full, entry dropped")
	}
}

// shardIndex maps an entity id deterministically to a worker index.
func (r *Reconciler) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32() % uint32(len(r.workers)))
}

func (r *Reconciler) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for entry := range ch {
		if ctx.Err() != nil {
			r.drop(id, entry, "audit reconciler cancelled, entry dropped")
			continue
		}
		metrics.AuditReconcileQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
		if err := r.write(ctx, entry); err != nil {
			metrics.AuditReconcileTotal.WithLabelValues("failed").Inc()
			r.logEntry(r.logger.Error().Err(err), entry).Int("worker_id", id).Msg("audit reconciliation gave up")
			continue
		}
		metrics.AuditReconcileTotal.WithLabelValues("written").Inc()
		r.logger.Info().
			Str("audit_id", entry.ID).
			Str("entity_id", entry.EntityID).
			Int("worker_id", id).
			Msg("audit entry reconciled")
	}
}

func (r *Reconciler) drop(id int, entry domain.AuditEntry, msg string) {
	metrics.AuditReconcileQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()
	metrics.AuditReconcileTotal.WithLabelValues("dropped").Inc()
	r.logEntry(r.logger.Error(), entry).Int("worker_id", id).Msg(msg)
}

// write appends entry, or moves it to its final state when an earlier attempt
// (or a provisional write) already stored it.
func (r *Reconciler) write(ctx context.Context, entry domain.AuditEntry) error {
	var err error
	backoff := baseBackoff
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.repo.Append(ctx, &entry)
		if errors.Is(err, domain.ErrConflict) {
			err = r.repo.Resolve(ctx, entry.ID, entry.State)
		}
		if err == nil {
			return nil
		}
		if attempt == r.attempts || !r.sleep(ctx, backoff) {
			break
		}
		backoff = min(backoff*2, maxBackoff)
	}
	return err
}

func (r *Reconciler) logEntry(ev *zerolog.Event, entry domain.AuditEntry) *zerolog.Event {
	return ev.
		Str("audit_id", entry.ID).
		Str("action", string(entry.Action)).
		Str("entity_type", entry.EntityType).
		Str("entity_id", entry.EntityID).
		Str("user", entry.Username).
		Time("timestamp", entry.Timestamp).
		Str("state", string(entry.State)).
		Str("digest", entry.Digest).
		Interface("details", entry.Details)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
