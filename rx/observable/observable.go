// Package observable provides the multi-result variant: a subscription
// that delivers zero or more next(value) events strictly before a
// complete or error terminal.
//
// There is no buffering and no backpressure: a producer emitting faster
// than the observation scheduler drains is an unsupported scenario, by
// the engine's contract.
package observable

import (
	"github.com/on-the-ground/react_ive_go/rx"
)

// Emitter is the emission handle an observable Action receives.
type Emitter[T any] interface {
	Next(v T)
	Complete()
	Error(err error)
	IsUnsubscribed() bool
}

// Action drives the emissions of one subscription. It is invoked exactly
// once per Subscribe call, may call Next any number of times before one
// terminal event, and should treat IsUnsubscribed() == true as the
// signal to stop emitting.
type Action[T any] func(Emitter[T])

// Observable is an immutable description of multi-result work.
type Observable[T any] struct {
	action      Action[T]
	subscribeOn rx.Scheduler
	observeOn   rx.Scheduler
}

// New builds an Observable from an Action.
func New[T any](action Action[T]) Observable[T] {
	return Observable[T]{action: action}
}

// Just emits each value in order, then completes.
func Just[T any](vs ...T) Observable[T] {
	return New(func(em Emitter[T]) {
		for _, v := range vs {
			if em.IsUnsubscribed() {
				return
			}
			em.Next(v)
		}
		em.Complete()
	})
}

// Empty completes without emitting.
func Empty[T any]() Observable[T] {
	return New(func(em Emitter[T]) {
		em.Complete()
	})
}

// Error terminates with err as soon as it is subscribed.
func Error[T any](err error) Observable[T] {
	return New(func(em Emitter[T]) {
		em.Error(err)
	})
}

// Defer builds the actual Observable at subscribe time, once per
// subscription.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return New(func(em Emitter[T]) {
		factory().action(em)
	})
}

// SubscribeOn returns a copy whose Action runs on s. Default: Immediate.
func (o Observable[T]) SubscribeOn(s rx.Scheduler) Observable[T] {
	o.subscribeOn = s
	return o
}

// ObserveOn returns a copy whose consumer callbacks are delivered on s.
// Default: Immediate. For ordered, non-overlapping delivery s must
// serialize execution.
func (o Observable[T]) ObserveOn(s rx.Scheduler) Observable[T] {
	o.observeOn = s
	return o
}

// Option supplies one consumer callback to Subscribe.
type Option[T any] func(*rx.Callbacks[T])

// OnStart observes the start signal.
func OnStart[T any](fn func()) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnStart = fn }
}

// OnNext observes each intermediate value.
func OnNext[T any](fn func(T)) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnNext = fn }
}

// OnComplete observes the completion terminal.
func OnComplete[T any](fn func()) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnComplete = fn }
}

// OnError observes the error terminal. Without it, an error re-raises as
// an rx.UnhandledError.
func OnError[T any](fn func(error)) Option[T] {
	return func(cb *rx.Callbacks[T]) { cb.OnError = fn }
}

// Subscribe runs the Action once and returns the cancellable handle.
func (o Observable[T]) Subscribe(opts ...Option[T]) rx.Subscription {
	return o.subscribe(o.subscribeOn, o.observeOn, opts)
}

func (o Observable[T]) subscribe(subscribeOn, observeOn rx.Scheduler, opts []Option[T]) rx.Subscription {
	var cb rx.Callbacks[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&cb)
		}
	}
	action := o.action
	return rx.Subscribe(rx.ArityMany, func(em *rx.Emission[T]) {
		action(em)
	}, cb, subscribeOn, observeOn)
}
