package rx

// Subscription is the cancellable handle returned by Subscribe.
//
// Unsubscribe is idempotent and safe to call from any goroutine at any
// time; it releases the consumer reference immediately, after which
// every event the Action still attempts to deliver is dropped as a
// no-op. IsUnsubscribed is monotonic: once it reports true it never
// reverts.
type Subscription interface {
	Unsubscribe()
	IsUnsubscribed() bool
}
