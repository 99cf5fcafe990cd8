package rx_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/react_ive_go/rx"
	"github.com/stretchr/testify/assert"
)

// manualScheduler queues work until flushed, so tests can control
// exactly when the subscription side runs.
type manualScheduler struct {
	work []func()
}

func (s *manualScheduler) Execute(work func()) {
	s.work = append(s.work, work)
}

func (s *manualScheduler) flush() {
	for len(s.work) > 0 {
		next := s.work[0]
		s.work = s.work[1:]
		next()
	}
}

func TestSubscribe_SynchronousCompletion(t *testing.T) {
	var events []string

	sub := rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
	}, rx.Callbacks[struct{}]{
		OnStart:    func() { events = append(events, "start") },
		OnComplete: func() { events = append(events, "complete") },
		OnError:    func(err error) { t.Fatalf("unexpected error: %v", err) },
	}, nil, nil)

	// Immediate schedulers: everything already happened, in order.
	assert.Equal(t, []string{"start", "complete"}, events)
	assert.False(t, sub.IsUnsubscribed())
}

func TestSubscribe_StartFiresBeforeDelayedAction(t *testing.T) {
	subscribeOn := &manualScheduler{}
	started := false
	completed := false

	rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
	}, rx.Callbacks[struct{}]{
		OnStart:    func() { started = true },
		OnComplete: func() { completed = true },
	}, subscribeOn, nil)

	if !started {
		t.Fatal("start must be delivered before the action is scheduled")
	}
	if completed {
		t.Fatal("action ran before its scheduler did")
	}

	subscribeOn.flush()
	if !completed {
		t.Fatal("expected completion after the subscription scheduler ran")
	}
}

func TestSubscribe_DoubleCompleteIsMisuse(t *testing.T) {
	completions := 0

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a misuse fault for the second complete")
		}
		var misuse *rx.MisuseError
		if err, ok := r.(error); !ok || !errors.As(err, &misuse) {
			t.Fatalf("expected *rx.MisuseError, got %v", r)
		}
		assert.Equal(t, "complete", misuse.Op)
		assert.Equal(t, 1, completions, "consumer must observe exactly one completion")
	}()

	rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
		em.Complete()
	}, rx.Callbacks[struct{}]{
		OnComplete: func() { completions++ },
	}, nil, nil)
}

func TestSubscribe_ErrorAfterCompleteIsMisuse(t *testing.T) {
	defer func() {
		r := recover()
		var misuse *rx.MisuseError
		if err, ok := r.(error); !ok || !errors.As(err, &misuse) {
			t.Fatalf("expected *rx.MisuseError, got %v", r)
		}
	}()

	rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
		em.Error(errors.New("too late"))
	}, rx.Callbacks[struct{}]{
		OnComplete: func() {},
		OnError:    func(error) {},
	}, nil, nil)
}

func TestSubscribe_NextOnZeroResultArityIsMisuse(t *testing.T) {
	defer func() {
		r := recover()
		var misuse *rx.MisuseError
		if err, ok := r.(error); !ok || !errors.As(err, &misuse) {
			t.Fatalf("expected *rx.MisuseError, got %v", r)
		}
		assert.Equal(t, "next", misuse.Op)
	}()

	rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Next(struct{}{})
	}, rx.Callbacks[struct{}]{OnError: func(error) {}}, nil, nil)
}

func TestSubscribe_ActionPanicBecomesErrorEvent(t *testing.T) {
	boom := errors.New("boom")
	var delivered error

	sub := rx.Subscribe(rx.AritySingle, func(em *rx.Emission[int]) {
		panic(boom)
	}, rx.Callbacks[int]{
		OnError: func(err error) { delivered = err },
	}, nil, nil)

	if !errors.Is(delivered, boom) {
		t.Fatalf("expected the panic value as the error cause, got %v", delivered)
	}
	assert.False(t, sub.IsUnsubscribed())
}

func TestSubscribe_UnhandledErrorReRaises(t *testing.T) {
	boom := errors.New("nobody listening")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected an unhandled-error fault")
		}
		var unhandled *rx.UnhandledError
		if err, ok := r.(error); !ok || !errors.As(err, &unhandled) {
			t.Fatalf("expected *rx.UnhandledError, got %v", r)
		}
		if !errors.Is(unhandled, boom) {
			t.Fatalf("expected cause %v, got %v", boom, unhandled.Cause)
		}
	}()

	rx.Subscribe(rx.AritySingle, func(em *rx.Emission[int]) {
		em.Error(boom)
	}, rx.Callbacks[int]{}, nil, nil)
}

func TestSubscribe_UnsubscribeIsIdempotentAndMonotonic(t *testing.T) {
	sub := rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		// never terminates
	}, rx.Callbacks[struct{}]{}, nil, nil)

	assert.False(t, sub.IsUnsubscribed())
	sub.Unsubscribe()
	assert.True(t, sub.IsUnsubscribed())
	sub.Unsubscribe()
	assert.True(t, sub.IsUnsubscribed())
}

func TestSubscribe_EmissionsAfterUnsubscribeAreDropped(t *testing.T) {
	var handle *rx.Emission[int]
	var seen []int
	terminated := false

	sub := rx.Subscribe(rx.ArityMany, func(em *rx.Emission[int]) {
		handle = em
		em.Next(1)
	}, rx.Callbacks[int]{
		OnNext:     func(v int) { seen = append(seen, v) },
		OnComplete: func() { terminated = true },
		OnError:    func(err error) { t.Fatalf("unexpected error: %v", err) },
	}, nil, nil)

	sub.Unsubscribe()

	// Late emissions from the producer side: all silent no-ops.
	handle.Next(2)
	handle.Complete()
	handle.Error(errors.New("late"))

	assert.Equal(t, []int{1}, seen)
	assert.False(t, terminated)
}

func TestSubscribe_UnsubscribeBeforeActionRuns(t *testing.T) {
	subscribeOn := &manualScheduler{}
	var seen []string

	sub := rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
	}, rx.Callbacks[struct{}]{
		OnComplete: func() { seen = append(seen, "complete") },
		OnError:    func(err error) { seen = append(seen, "error") },
	}, subscribeOn, nil)

	sub.Unsubscribe()
	// The action eventually runs, completes into a released machine, and
	// nothing reaches the consumer. No fault either.
	subscribeOn.flush()

	assert.Empty(t, seen)
	assert.True(t, sub.IsUnsubscribed())
}

func TestSubscribe_PanicAfterUnsubscribeEscalates(t *testing.T) {
	subscribeOn := &manualScheduler{}
	boom := errors.New("ignored cancellation")
	errored := false

	sub := rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		panic(boom)
	}, rx.Callbacks[struct{}]{
		OnError: func(error) { errored = true },
	}, subscribeOn, nil)

	sub.Unsubscribe()

	// The Action threw instead of observing cancellation and stopping;
	// there is no consumer left, so the panic must escalate as-is.
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("a panic after cancellation must escalate, not be swallowed")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, boom) {
			t.Fatalf("expected the original panic value, got %v", r)
		}
		assert.False(t, errored, "no error delivery to a released consumer")
	}()
	subscribeOn.flush()
}

func TestSubscribe_RacingTerminalsResolveDeterministically(t *testing.T) {
	for i := 0; i < 100; i++ {
		var handle *rx.Emission[struct{}]
		var deliveries atomic.Int32

		rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
			handle = em
		}, rx.Callbacks[struct{}]{
			OnComplete: func() { deliveries.Add(1) },
			OnError:    func(error) { deliveries.Add(1) },
		}, nil, nil)

		start := make(chan struct{})
		faults := make(chan error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(error); ok {
						faults <- err
					}
				}
			}()
			<-start
			handle.Complete()
		}()
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(error); ok {
						faults <- err
					}
				}
			}()
			<-start
			handle.Error(errors.New("boom"))
		}()
		close(start)
		wg.Wait()
		close(faults)

		// Exactly one racing terminal wins and delivers; the loser is
		// the misuse-fault case, deterministically.
		misuses := 0
		for err := range faults {
			var misuse *rx.MisuseError
			if !errors.As(err, &misuse) {
				t.Fatalf("expected *rx.MisuseError from the losing terminal, got %v", err)
			}
			misuses++
		}
		assert.Equal(t, 1, misuses, "exactly one terminal must lose")
		assert.Equal(t, int32(1), deliveries.Load(), "exactly one consumer delivery")
	}
}

func TestSubscribe_MisusePanicStaysLoud(t *testing.T) {
	defer func() {
		r := recover()
		var misuse *rx.MisuseError
		if err, ok := r.(error); !ok || !errors.As(err, &misuse) {
			t.Fatalf("expected the misuse fault to propagate, got %v", r)
		}
	}()

	// The engine must not translate a recognized misuse fault into an
	// error event.
	rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		em.Complete()
		em.Complete()
	}, rx.Callbacks[struct{}]{
		OnComplete: func() {},
		OnError: func(err error) {
			t.Fatalf("misuse fault leaked into the error channel: %v", err)
		},
	}, nil, nil)
}
