package observable

import (
	"github.com/on-the-ground/react_ive_go/rx"
)

// deferredExec queues submitted work until flushed. The combinators
// subscribe upstream through it so the upstream handle is captured
// before emission begins; the flush then runs the upstream action
// synchronously on the calling goroutine, keeping immediate-scheduling
// semantics.
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

// Map derives an Observable whose values are fn of the upstream's. The
// derived Observable keeps the upstream's schedulers; the wrapping
// action subscribes upstream immediately, forwards events downstream,
// and cancels upstream once it observes downstream cancellation.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	derived := New(func(em Emitter[R]) {
		run := &deferredExec{}
		var up rx.Subscription
		up = src.subscribe(run, rx.Immediate, []Option[T]{
			OnNext[T](func(v T) {
				if em.IsUnsubscribed() {
					up.Unsubscribe()
					return
				}
				em.Next(fn(v))
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

// Filter derives an Observable that forwards only values passing pred.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	derived := New(func(em Emitter[T]) {
		run := &deferredExec{}
		var up rx.Subscription
		up = src.subscribe(run, rx.Immediate, []Option[T]{
			OnNext[T](func(v T) {
				if em.IsUnsubscribed() {
					up.Unsubscribe()
					return
				}
				if pred(v) {
					em.Next(v)
				}
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
