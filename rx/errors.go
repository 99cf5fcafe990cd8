package rx

import "fmt"

// MisuseError reports a protocol violation by an Action: start fired
// more than once, a terminal event after a terminal event, or an
// intermediate event the arity policy forbids. It is raised by panicking
// so the bug surfaces at the offending call site instead of being
// delivered through the error channel.
type MisuseError struct {
	SubscriptionID string
	Op             string
	Reason         string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("rx: subscription %s: illegal %s: %s", e.SubscriptionID, e.Op, e.Reason)
}

// UnhandledError wraps a business error that reached a consumer with no
// OnError callback. The default error callback panics with this type
// rather than swallowing the error.
type UnhandledError struct {
	SubscriptionID string
	Cause          error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("rx: subscription %s: unhandled error: %v", e.SubscriptionID, e.Cause)
}

func (e *UnhandledError) Unwrap() error {
	return e.Cause
}

// panicCause converts a recovered panic value into the error event's
// cause, preserving it as-is when the Action panicked with an error.
func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("rx: action panic: %v", r)
}
