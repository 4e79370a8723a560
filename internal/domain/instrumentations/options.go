package instrumentations

import "github.com/rs/zerolog"

type options struct {
	log zerolog.Logger
}

// Option configures an adapter.
type Option func(*options)

// WithLogger makes the adapter log every probe it inserts at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
