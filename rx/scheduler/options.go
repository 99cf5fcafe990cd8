package scheduler

import "go.uber.org/zap"

// Option configures a constructed scheduler.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a logger for lifecycle events. Default is a nop
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
