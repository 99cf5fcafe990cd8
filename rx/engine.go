package rx

import "errors"

// Subscribe runs one subscription: it builds an emission state machine
// bound to observeOn, fires the start signal synchronously, submits the
// action to subscribeOn, and returns the machine as the cancellable
// handle. Nil schedulers default to Immediate.
//
// All delivery to the consumer, the start signal included, goes through
// observeOn — never the raw calling goroutine and never subscribeOn.
// Start is fired before the action is scheduled so the consumer observes
// that the subscription began even when the producer's scheduler delays
// it.
//
// A panic escaping the action is classified rather than blindly
// recovered:
//
//   - a MisuseError or UnhandledError stays loud (a protocol violation,
//     or an error the consumer already declined to handle);
//   - before cancellation, any other panic becomes an error-event
//     delivery carrying the panic value as its cause;
//   - after cancellation it re-panics: the Action threw instead of
//     observing cancellation and stopping, and there is no consumer
//     left to deliver to.
func Subscribe[T any](
	arity Arity,
	action func(*Emission[T]),
	cb Callbacks[T],
	subscribeOn Scheduler,
	observeOn Scheduler,
) Subscription {
	if subscribeOn == nil {
		subscribeOn = Immediate
	}
	if observeOn == nil {
		observeOn = Immediate
	}

	m := newEmission(arity, observeOn, cb)
	m.start()

	subscribeOn.Execute(func() {
		runAction(m, action)
	})

	return m
}

func runAction[T any](m *Emission[T], action func(*Emission[T])) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		// Recognized engine faults stay loud. An UnhandledError has
		// already escaped the consumer's error channel once; there is
		// nowhere further to deliver it.
		if err, ok := r.(error); ok {
			var misuse *MisuseError
			var unhandled *UnhandledError
			if errors.As(err, &misuse) || errors.As(err, &unhandled) {
				panic(r)
			}
		}
		if m.IsUnsubscribed() {
			panic(r)
		}
		m.Error(panicCause(r))
	}()

	action(m)
}
