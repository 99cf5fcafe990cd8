package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Serial executes submitted work on a single dedicated goroutine in FIFO
// order. Because it serializes, it is safe to use as an observation
// scheduler: callbacks delivered through it never overlap.
type Serial struct {
	SchedulerId string

	queue     chan func()
	stopCh    chan struct{}
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewSerial starts the worker goroutine and returns once it is running.
// Cancelling ctx closes the scheduler as if Close had been called.
func NewSerial(ctx context.Context, bufferSize int, opts ...Option) *Serial {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	o := newOptions(opts)

	s := &Serial{
		SchedulerId: uuid.New().String(),
		queue:       make(chan func(), bufferSize),
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
		logger:      o.logger,
	}

	ready := make(chan struct{})
	go func() {
		defer close(s.done)
		close(ready)
		for {
			select {
			case work := <-s.queue:
				work()
			case <-s.stopCh:
				s.drain()
				return
			}
		}
	}()
	<-ready

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	s.logger.Debug("serial scheduler started", zap.String("schedulerId", s.SchedulerId))
	return s
}

func (s *Serial) drain() {
	for {
		select {
		case work := <-s.queue:
			work()
		default:
			return
		}
	}
}

// Execute enqueues work for the worker goroutine. It blocks while the
// queue is full. Executing on a closed scheduler panics: submitting to a
// torn-down executor is a host bug outside the engine's recovery
// contract.
func (s *Serial) Execute(work func()) {
	if s.closed.Load() {
		panic("scheduler: execute on closed serial scheduler " + s.SchedulerId)
	}
	select {
	case s.queue <- work:
	case <-s.done:
		panic("scheduler: execute on closed serial scheduler " + s.SchedulerId)
	}
}

// Close stops the worker after draining already-queued work. Idempotent.
func (s *Serial) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.stopCh)
		<-s.done
		s.logger.Debug("serial scheduler closed", zap.String("schedulerId", s.SchedulerId))
	})
}
