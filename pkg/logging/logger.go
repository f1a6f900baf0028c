// Package logging holds the zerolog logger shared by the delta packages.
//
// The reconcilers only emit debug events (replace fallbacks, field dispatch)
// through Debug, so an embedding program hears nothing unless it lowers the
// level. The CLI builds its logger with NewLoggerFromConfig, installs it with
// SetDefault and threads per-command fields through a context:
//
//	ctx := logging.WithLogger(cmd.Context(), app.Logger())
//	ctx = logging.WithFile(ctx, "existing", path)
//	logging.FromContext(ctx).Debug().Int("changes", n).Msg("Computed changeset")
package logging

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = newDefaultLogger()

// newDefaultLogger reads LOG_LEVEL (or DEBUG) once at start-up. Without
// either, it stays at warn.
func newDefaultLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if l, err := zerolog.ParseLevel(v); err == nil {
			level = l
		}
	} else if os.Getenv("DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
