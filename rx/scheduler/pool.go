package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pool executes submitted work on a fixed set of worker goroutines, one
// FIFO queue per worker. Execute distributes round-robin and therefore
// does NOT serialize: use a Pool as a subscription scheduler, and pin a
// Keyed view when a serialized observation context is needed.
type Pool struct {
	SchedulerId string

	queues    []chan func()
	next      atomic.Uint64
	stopCh    chan struct{}
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewPool starts cfg.NumWorkers workers and returns once all of them are
// running. Cancelling ctx closes the pool as if Close had been called.
func NewPool(ctx context.Context, cfg Config, opts ...Option) *Pool {
	cfg = NewConfig(cfg.BufferSize, cfg.NumWorkers)
	o := newOptions(opts)

	p := &Pool{
		SchedulerId: uuid.New().String(),
		queues:      make([]chan func(), cfg.NumWorkers),
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
		logger:      o.logger,
	}

	var workers sync.WaitGroup
	ready := sync.WaitGroup{}
	for i := 0; i < cfg.NumWorkers; i++ {
		queue := make(chan func(), cfg.BufferSize)
		p.queues[i] = queue
		ready.Add(1)
		workers.Add(1)
		go func(queue chan func()) {
			defer workers.Done()
			ready.Done()
			for {
				select {
				case work := <-queue:
					work()
				case <-p.stopCh:
					drainQueue(queue)
					return
				}
			}
		}(queue)
	}
	ready.Wait()

	go func() {
		workers.Wait()
		close(p.done)
	}()

	go func() {
		select {
		case <-ctx.Done():
			p.Close()
		case <-p.done:
		}
	}()

	p.logger.Debug("pool scheduler started",
		zap.String("schedulerId", p.SchedulerId),
		zap.Int("numWorkers", cfg.NumWorkers),
	)
	return p
}

func drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// Execute enqueues work on the next worker, round-robin.
func (p *Pool) Execute(work func()) {
	idx := p.next.Add(1) % uint64(len(p.queues))
	p.executeOn(int(idx), work)
}

func (p *Pool) executeOn(idx int, work func()) {
	if p.closed.Load() {
		panic("scheduler: execute on closed pool scheduler " + p.SchedulerId)
	}
	select {
	case p.queues[idx] <- work:
	case <-p.done:
		panic("scheduler: execute on closed pool scheduler " + p.SchedulerId)
	}
}

// Keyed returns a serialized view of the pool: all work submitted
// through the view runs on the single worker the key hashes to, in FIFO
// order. Views with equal keys share a worker, so a per-subscription key
// yields a valid observation scheduler backed by the pool.
func (p *Pool) Keyed(key string) *KeyedView {
	idx := int(xxhash.Sum64String(key) % uint64(len(p.queues)))
	return &KeyedView{pool: p, idx: idx}
}

// Close stops all workers after draining already-queued work.
// Idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.stopCh)
		<-p.done
		p.logger.Debug("pool scheduler closed", zap.String("schedulerId", p.SchedulerId))
	})
}

// KeyedView is the per-key serial face of a Pool. It shares the pool's
// lifecycle; closing the pool closes every view.
type KeyedView struct {
	pool *Pool
	idx  int
}

// Execute enqueues work on the view's pinned worker.
func (v *KeyedView) Execute(work func()) {
	v.pool.executeOn(v.idx, work)
}
