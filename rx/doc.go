// Package rx provides the subscription engine shared by the four
// reactive variants (completable, maybe, single, observable).
//
// # What is a subscription?
//
// A subscription is one run of a user-supplied Action: the engine builds
// an emission state machine bound to an observation scheduler, signals
// start, hands the Action its emission handle on a subscription
// scheduler, and returns the machine as a cancellable handle.
//
// Every event the Action emits is marshaled onto the observation
// scheduler before it reaches the consumer callbacks. The machine
// enforces the variant's arity policy with atomic guards: exactly one
// terminal event per subscription, intermediate events only where the
// policy allows them, and total silence after cancellation.
//
// # Loud vs. silent failures
//
// The engine draws a hard line between two kinds of trouble:
//
//   - A business error — raised through the error event, or a panic
//     escaping the Action before cancellation — flows to the consumer's
//     OnError callback. If no OnError was supplied it is re-raised as an
//     UnhandledError so it cannot be swallowed silently.
//   - A protocol violation — start fired twice, a terminal event after a
//     terminal event, an intermediate event the arity forbids — is a
//     MisuseError panic. It signals a bug in the Action itself and is
//     never delivered through the error channel.
//
// Emissions attempted after Unsubscribe are neither: cancellation races
// with in-flight work are expected, so they are dropped without fault.
//
// # Concurrency contract
//
// The engine owns no goroutines; all concurrency comes from the injected
// Scheduler values. Consumer callbacks are strictly ordered only when
// the observation scheduler serializes execution (Immediate, or a
// dedicated serial scheduler). Under a concurrently-executing
// observation scheduler the terminal guards remain deterministic (one
// racing terminal wins, the other faults) but delivery order is the
// scheduler's business, not the engine's.
package rx
