package rx

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Arity is the emission policy a variant pins: how many intermediate
// and success-type events one subscription may legally deliver.
type Arity uint8

const (
	// ArityNone terminates with complete or error, nothing else.
	ArityNone Arity = iota
	// ArityOptional terminates with success(value), complete, or error.
	ArityOptional
	// AritySingle terminates with success(value) or error.
	AritySingle
	// ArityMany allows any number of next(value) events before a
	// complete or error terminal.
	ArityMany
)

func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOptional:
		return "optional"
	case AritySingle:
		return "single"
	case ArityMany:
		return "many"
	default:
		return "unknown"
	}
}

// Machine states. Unsubscribed is absorbing: reachable from every other
// state and never left.
const (
	stateCreated int32 = iota
	stateStarted
	stateTerminated
	stateUnsubscribed
)

// Emission is the per-subscription state machine. It owns the consumer
// reference and enforces the arity policy with atomic guards, so that of
// two racing terminal calls exactly one wins and the other is the
// misuse-fault case rather than a double delivery.
//
// Only the engine constructs an Emission; Actions receive it as their
// emission handle, variant facades narrow it to the emitter interface
// their arity admits, and callers hold it as the Subscription handle.
type Emission[T any] struct {
	id        string
	arity     Arity
	observeOn Scheduler

	state atomic.Int32
	// consumer flips to nil exactly once, at the first terminal event or
	// at cancellation, whichever comes first. A nil consumer means no
	// further delivery is possible.
	consumer atomic.Pointer[Callbacks[T]]
}

var _ Subscription = (*Emission[any])(nil)

func newEmission[T any](arity Arity, observeOn Scheduler, cb Callbacks[T]) *Emission[T] {
	e := &Emission[T]{
		id:        uuid.New().String(),
		arity:     arity,
		observeOn: observeOn,
	}
	cb = cb.normalized(e.id)
	e.consumer.Store(&cb)
	return e
}

// start fires the start signal. Engine-internal: Actions never see it,
// so a second call means the engine was driven twice — a protocol bug,
// not a runtime condition.
func (e *Emission[T]) start() {
	if !e.state.CompareAndSwap(stateCreated, stateStarted) {
		if e.state.Load() == stateUnsubscribed {
			return
		}
		panic(&MisuseError{
			SubscriptionID: e.id,
			Op:             "start",
			Reason:         "start fires exactly once, before any other event",
		})
	}
	cb := e.consumer.Load()
	if cb == nil {
		return
	}
	onStart := cb.OnStart
	e.observeOn.Execute(func() { onStart() })
}

// Next delivers an intermediate value. Legal only for ArityMany and only
// before a terminal event; after cancellation it is a silent no-op.
func (e *Emission[T]) Next(v T) {
	if e.arity != ArityMany {
		panic(&MisuseError{
			SubscriptionID: e.id,
			Op:             "next",
			Reason:         "intermediate events are not legal for the " + e.arity.String() + " arity",
		})
	}
	switch e.state.Load() {
	case stateUnsubscribed:
		return
	case stateTerminated:
		panic(&MisuseError{
			SubscriptionID: e.id,
			Op:             "next",
			Reason:         "intermediate event after a terminal event",
		})
	}
	cb := e.consumer.Load()
	if cb == nil {
		return
	}
	onNext := cb.OnNext
	e.observeOn.Execute(func() { onNext(v) })
}

// Success terminates with a value. Legal for ArityOptional and
// AritySingle.
func (e *Emission[T]) Success(v T) {
	if e.arity != ArityOptional && e.arity != AritySingle {
		panic(&MisuseError{
			SubscriptionID: e.id,
			Op:             "success",
			Reason:         "success is not a legal terminal for the " + e.arity.String() + " arity",
		})
	}
	cb, ok := e.terminate("success")
	if !ok {
		return
	}
	onSuccess := cb.OnSuccess
	e.observeOn.Execute(func() { onSuccess(v) })
}

// Complete terminates without a value. Legal for every arity except
// AritySingle, which must produce a value or an error.
func (e *Emission[T]) Complete() {
	if e.arity == AritySingle {
		panic(&MisuseError{
			SubscriptionID: e.id,
			Op:             "complete",
			Reason:         "the single arity terminates with success or error, never complete",
		})
	}
	cb, ok := e.terminate("complete")
	if !ok {
		return
	}
	onComplete := cb.OnComplete
	e.observeOn.Execute(func() { onComplete() })
}

// Error terminates with a cause. Legal exactly once for every arity.
func (e *Emission[T]) Error(err error) {
	cb, ok := e.terminate("error")
	if !ok {
		return
	}
	onError := cb.OnError
	e.observeOn.Execute(func() { onError(err) })
}

// terminate claims the single terminal slot. It returns the consumer
// snapshot and true when the caller won; false when the subscription was
// already cancelled (silent no-op). Losing to another terminal is the
// misuse-fault case and panics.
func (e *Emission[T]) terminate(op string) (*Callbacks[T], bool) {
	for {
		switch s := e.state.Load(); s {
		case stateUnsubscribed:
			return nil, false
		case stateTerminated:
			panic(&MisuseError{
				SubscriptionID: e.id,
				Op:             op,
				Reason:         "terminal event after a terminal event",
			})
		default:
			if e.state.CompareAndSwap(s, stateTerminated) {
				cb := e.consumer.Swap(nil)
				return cb, cb != nil
			}
		}
	}
}

// Unsubscribe cancels the subscription: idempotent, callable from any
// state and any goroutine. The consumer reference is released
// immediately; everything the Action still emits afterwards is dropped.
func (e *Emission[T]) Unsubscribe() {
	for {
		s := e.state.Load()
		if s == stateUnsubscribed {
			return
		}
		if e.state.CompareAndSwap(s, stateUnsubscribed) {
			e.consumer.Store(nil)
			return
		}
	}
}

// IsUnsubscribed reports whether Unsubscribe has been observed. Actions
// should treat true as the signal to stop emitting.
func (e *Emission[T]) IsUnsubscribed() bool {
	return e.state.Load() == stateUnsubscribed
}
