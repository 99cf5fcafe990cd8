// Package maybe provides the optional-single-result variant: a
// subscription that terminates with success(value), complete (no
// value), or error. Success and complete are mutually exclusive.
package maybe

import (
	"github.com/on-the-ground/react_ive_go/rx"
)

// Emitter is the emission handle a maybe Action receives.
type Emitter[T any] interface {
	Success(v T)
	Complete()
	Error(err error)
	IsUnsubscribed() bool
}

// Action drives the emissions of one subscription. It is invoked exactly
// once per Subscribe call and must call at most one terminal event.
type Action[T any] func(Emitter[T])

// Maybe is an immutable description of optional-result work.
type Maybe[T any] struct {
	action      Action[T]
	subscribeOn rx.Scheduler
	observeOn   rx.Scheduler
}

// New builds a Maybe from an Action.
func New[T any](action Action[T]) Maybe[T] {
	return Maybe[T]{action: action}
}

// Just succeeds with v as soon as it is subscribed.
func Just[T any](v T) Maybe[T] {
	return New(func(em Emitter[T]) {
		em.Success(v)
	})
}

// Empty completes without a value as soon as it is subscribed.
func Empty[T any]() Maybe[T] {
	return New(func(em Emitter[T]) {
		em.Complete()
	})
}

// Error terminates with err as soon as it is subscribed.
func Error[T any](err error) Maybe[T] {
	return New(func(em Emitter[T]) {
		em.Error(err)
	})
}

// Defer builds the actual Maybe at subscribe time, once per
// subscription.
func Defer[T any](factory func() Maybe[T]) Maybe[T] {
	return New(func(em Emitter[T]) {
		factory().action(em)
	})
}

// SubscribeOn returns a copy whose Action runs on s. Default: Immediate.
func (m Maybe[T]) SubscribeOn(s rx.Scheduler) Maybe[T] {
	m.subscribeOn = s
	return m
}

// ObserveOn returns a copy whose consumer callbacks are delivered on s.
// Default: Immediate.
func (m Maybe[T]) ObserveOn(s rx.Scheduler) Maybe[T] {
	m.observeOn = s
	return m
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

// OnComplete observes the empty completion terminal.
func OnComplete[T any](fn func()) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnComplete = fn }
}

// OnError observes the error terminal. Without it, an error re-raises as
// an rx.UnhandledError.
func OnError[T any](fn func(error)) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnError = fn }
}

// Subscribe runs the Action once and returns the cancellable handle.
func (m Maybe[T]) Subscribe(opts ...Option[T]) rx.Subscription {
	return m.subscribe(m.subscribeOn, m.observeOn, opts)
}

func (m Maybe[T]) subscribe(subscribeOn, observeOn rx.Scheduler, opts []Option[T]) rx.Subscription {
	var cb rx.Callbacks[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&cb)
		}
	}
	action := m.action
	return rx.Subscribe(rx.ArityOptional, func(em *rx.Emission[T]) {
		action(em)
	}, cb, subscribeOn, observeOn)
}

// deferredExec queues submitted work until flushed, so the combinators
// capture the upstream handle before emission begins while keeping
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

// Map derives a Maybe whose success value is fn of the upstream's. The
// derived Maybe keeps the upstream's schedulers; the wrapping action
// subscribes upstream immediately, forwards events downstream, and
// cancels upstream once it observes downstream cancellation.
func Map[T, R any](src Maybe[T], fn func(T) R) Maybe[R] {
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
			OnComplete[T](func() { em.Complete() }),
			OnError[T](func(err error) { em.Error(err) }),
		})
		run.flush()
	})
	derived.subscribeOn = src.subscribeOn
	derived.observeOn = src.observeOn
	return derived
}

// Filter derives a Maybe that completes empty when the upstream value
// fails pred.
func Filter[T any](src Maybe[T], pred func(T) bool) Maybe[T] {
	derived := New(func(em Emitter[T]) {
		run := &deferredExec{}
		var up rx.Subscription
		up = src.subscribe(run, rx.Immediate, []Option[T]{
			OnSuccess[T](func(v T) {
				if em.IsUnsubscribed() {
					up.Unsubscribe()
					return
				}
				if pred(v) {
					em.Success(v)
					return
				}
				em.Complete()
			}),
			OnComplete[T](func() { em.Complete() }),
			OnError[T](func(err error) { em.Error(err) }),
		})
		run.flush()
	})
	derived.subscribeOn = src.subscribeOn
	derived.observeOn = src.observeOn
	return derived
}
