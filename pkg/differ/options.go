package differ

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/delta/pkg/logging"
	"github.com/agentstation/delta/pkg/ordered"
)

// Option is a functional option for configuring a Schema.
type Option func(*options)

type options struct {
	ignoreFields map[string]bool
	algorithm    ordered.Algorithm
	algorithmSet bool
	logger       *zerolog.Logger
}

func newOptions(opts ...Option) *options {
	o := &options{ignoreFields: make(map[string]bool)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) log() *zerolog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logging.Default()
}

// WithIgnoredFields sets fields to ignore during comparison
func WithIgnoredFields(fields ...string) Option {
	return func(o *options) {
		for _, field := range fields {
			o.ignoreFields[field] = true
		}
	}
}

// WithAlgorithm sets the edit-distance algorithm of every ordered field,
// overriding the one the field's strategy was built with.
func WithAlgorithm(a ordered.Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
		o.algorithmSet = true
	}
}

// WithLogger sets the logger used for debug events. The package default
// logger is used otherwise.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
