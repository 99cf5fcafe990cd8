// Package completable provides the zero-result variant: a subscription
// that terminates with complete or error and never carries a value.
package completable

import (
	"github.com/on-the-ground/react_ive_go/rx"
)

// Emitter is the emission handle a completable Action receives.
type Emitter interface {
	Complete()
	Error(err error)
	IsUnsubscribed() bool
}

// Action drives the emissions of one subscription. It is invoked exactly
// once per Subscribe call, must call at most one terminal event, and
// should treat IsUnsubscribed() == true as the signal to stop.
type Action func(Emitter)

// Completable is an immutable description of zero-result work. The
// zero value is not usable; build one with New, Empty, Error, or Defer.
type Completable struct {
	action      Action
	subscribeOn rx.Scheduler
	observeOn   rx.Scheduler
}

// New builds a Completable from an Action.
func New(action Action) Completable {
	return Completable{action: action}
}

// Empty completes as soon as it is subscribed.
func Empty() Completable {
	return New(func(em Emitter) {
		em.Complete()
	})
}

// Error terminates with err as soon as it is subscribed.
func Error(err error) Completable {
	return New(func(em Emitter) {
		em.Error(err)
	})
}

// Defer builds the actual Completable at subscribe time, once per
// subscription.
func Defer(factory func() Completable) Completable {
	return New(func(em Emitter) {
		factory().action(em)
	})
}

// SubscribeOn returns a copy whose Action runs on s. Default: Immediate.
func (c Completable) SubscribeOn(s rx.Scheduler) Completable {
	c.subscribeOn = s
	return c
}

// ObserveOn returns a copy whose consumer callbacks are delivered on s.
// Default: Immediate.
func (c Completable) ObserveOn(s rx.Scheduler) Completable {
	c.observeOn = s
	return c
}

// Option supplies one consumer callback to Subscribe.
type Option func(*rx.Callbacks[struct{}])

// OnStart observes the start signal.
func OnStart(fn func()) Option {
	return func(cb *rx.Callbacks[struct{}]) { cb.OnStart = fn }
}

// OnComplete observes the completion terminal.
func OnComplete(fn func()) Option {
	return func(cb *rx.Callbacks[struct{}]) { cb.OnComplete = fn }
}

// OnError observes the error terminal. Without it, an error re-raises as
// an rx.UnhandledError.
func OnError(fn func(error)) Option {
	return func(cb *rx.Callbacks[struct{}]) { cb.OnError = fn }
}

// Subscribe runs the Action once and returns the cancellable handle.
func (c Completable) Subscribe(opts ...Option) rx.Subscription {
	var cb rx.Callbacks[struct{}]
	for _, opt := range opts {
		if opt != nil {
			opt(&cb)
		}
	}
	action := c.action
	return rx.Subscribe(rx.ArityNone, func(em *rx.Emission[struct{}]) {
		action(em)
	}, cb, c.subscribeOn, c.observeOn)
}
