// Package scheduler provides concrete rx.Scheduler implementations with
// an explicit construct/shutdown lifecycle.
//
// Nothing here is a hidden singleton: callers build a Serial or a Pool,
// inject it where they subscribe or observe, and Close it when the
// subscriptions that use it have quiesced. Close drains work already
// queued; Execute after Close is a fatal host error and panics.
//
// Serial runs everything on one goroutine and therefore serializes
// delivery, which makes it a valid observation scheduler. A Pool does
// not serialize across workers; to observe on a pool, pin a per-key
// serial view with Keyed.
package scheduler
