package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger. A nil ctx starts from
// context.Background and a nil logger means Default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or Default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok {
			return logger
		}
	}
	return Default()
}

// WithStrategy tags the context logger with the collection strategy.
func WithStrategy(ctx context.Context, strategy string) context.Context {
	return withStr(ctx, "strategy", strategy)
}

// WithAlgorithm tags the context logger with the ordered diff algorithm.
func WithAlgorithm(ctx context.Context, algorithm string) context.Context {
	return withStr(ctx, "algorithm", algorithm)
}

// WithFile tags the context logger with the path of a document under the
// given role, such as "existing", "updated" or "patch".
func WithFile(ctx context.Context, role, path string) context.Context {
	return withStr(ctx, role, path)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
