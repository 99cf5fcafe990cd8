// Package single provides the exactly-one-result variant: a
// subscription that terminates with success(value) or error, never a
// bare completion.
package single

import (
	"github.com/on-the-ground/react_ive_go/rx"
)

// Emitter is the emission handle a single Action receives.
type Emitter[T any] interface {
	Success(v T)
	Error(err error)
	IsUnsubscribed() bool
}

// Action drives the emissions of one subscription. It is invoked exactly
// once per Subscribe call and must call exactly one terminal event.
type Action[T any] func(Emitter[T])

// Single is an immutable description of exactly-one-result work.
type Single[T any] struct {
	action      Action[T]
	subscribeOn rx.Scheduler
	observeOn   rx.Scheduler
}

// New builds a Single from an Action.
func New[T any](action Action[T]) Single[T] {
	return Single[T]{action: action}
}

// Just succeeds with v as soon as it is subscribed.
func Just[T any](v T) Single[T] {
	return New(func(em Emitter[T]) {
		em.Success(v)
	})
}

// Error terminates with err as soon as it is subscribed.
func Error[T any](err error) Single[T] {
	return New(func(em Emitter[T]) {
		em.Error(err)
	})
}

// Defer builds the actual Single at subscribe time, once per
// subscription.
func Defer[T any](factory func() Single[T]) Single[T] {
	return New(func(em Emitter[T]) {
		factory().action(em)
	})
}

// SubscribeOn returns a copy whose Action runs on s. Default: Immediate.
func (s Single[T]) SubscribeOn(sched rx.Scheduler) Single[T] {
	s.subscribeOn = sched
	return s
}

// ObserveOn returns a copy whose consumer callbacks are delivered on
// sched. Default: Immediate.
func (s Single[T]) ObserveOn(sched rx.Scheduler) Single[T] {
	s.observeOn = sched
	return s
}

// Option supplies one consumer callback to Subscribe.
type Option[T any] func(*rx.Callbacks[T])

// OnStart observes the start signal.
func OnStart[T any](fn func()) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnStart = fn }
}

// OnSuccess observes the success terminal.
func OnSuccess[T any](fn func(T)) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnSuccess = fn }
}

// OnError observes the error terminal. Without it, an error re-raises as
// an rx.UnhandledError.
func OnError[T any](fn func(error)) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnError = fn }
}

// Subscribe runs the Action once and returns the cancellable handle.
func (s Single[T]) Subscribe(opts ...Option[T]) rx.Subscription {
	return s.subscribe(s.subscribeOn, s.observeOn, opts)
}

func (s Single[T]) subscribe(subscribeOn, observeOn rx.Scheduler, opts []Option[T]) rx.Subscription {
	var cb rx.Callbacks[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&cb)
		}
	}
	action := s.action
	return rx.Subscribe(rx.AritySingle, func(em *rx.Emission[T]) {
		action(em)
	}, cb, subscribeOn, observeOn)
}

// deferredExec queues submitted work until flushed, so Map captures the
// upstream handle before emission begins while keeping
// immediate-scheduling semantics for the upstream action.
type deferredExec struct {
	work []func()
}

func (d *deferredExec) Execute(work func()) {
	d.work = append(d.work, work)
}

func (d *deferredExec) flush() {
	for len(d.work) > 0 {
		next := d.work[0]
		d.work = d.work[1:]
		next()
	}
}

// Map derives a Single whose success value is fn of the upstream's. The
// derived Single keeps the upstream's schedulers; the wrapping action
// subscribes upstream immediately, forwards events downstream, and
// cancels upstream once it observes downstream cancellation.
func Map[T, R any](src Single[T], fn func(T) R) Single[R] {
	derived := New(func(em Emitter[R]) {
		run := &deferredExec{}
		var up rx.Subscription
		up = src.subscribe(run, rx.Immediate, []Option[T]{
			OnSuccess[T](func(v T) {
				if em.IsUnsubscribed() {
					up.Unsubscribe()
					return
				}
				em.Success(fn(v))
			}),
			OnError[T](func(err error) { em.Error(err) }),
		})
		run.flush()
	})
	derived.subscribeOn = src.subscribeOn
	derived.observeOn = src.observeOn
	return derived
}
