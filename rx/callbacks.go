package rx

import "go.uber.org/zap"

// Callbacks is the consumer side of a subscription. Every handler is
// optional; nil handlers are replaced with no-ops, except OnError, whose
// default logs the error and re-raises it as an UnhandledError panic.
// An error must be acknowledged explicitly or it stays loud.
type Callbacks[T any] struct {
	OnStart    func()
	OnNext     func(T)
	OnSuccess  func(T)
	OnComplete func()
	OnError    func(error)
}

func (c Callbacks[T]) normalized(subscriptionID string) Callbacks[T] {
	if c.OnStart == nil {
		c.OnStart = func() {}
	}
	if c.OnNext == nil {
		c.OnNext = func(T) {}
	}
	if c.OnSuccess == nil {
		c.OnSuccess = func(T) {}
	}
	if c.OnComplete == nil {
		c.OnComplete = func() {}
	}
	if c.OnError == nil {
		c.OnError = func(err error) {
			logger, _ := zap.NewProduction()
			logger.Error("unhandled subscription error",
				zap.String("subscriptionId", subscriptionID),
				zap.Error(err),
			)
			_ = logger.Sync()
			panic(&UnhandledError{SubscriptionID: subscriptionID, Cause: err})
		}
	}
	return c
}
