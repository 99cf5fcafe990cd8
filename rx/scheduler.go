package rx

// Scheduler abstracts where a unit of work runs. Execute must eventually
// run work, synchronously or asynchronously; it returns nothing and
// offers no per-unit cancellation. Submitting to a torn-down scheduler
// is a fatal host-level condition, not something the engine recovers
// from.
type Scheduler interface {
	Execute(work func())
}

type immediateScheduler struct{}

func (immediateScheduler) Execute(work func()) {
	work()
}

// Immediate runs work synchronously on the calling goroutine. It is the
// default for both the subscription and the observation side, and the
// only scheduler the engine itself ever assumes.
var Immediate Scheduler = immediateScheduler{}
