package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/pkg/logging"
)

func TestDefaultDebug(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))
	logging.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))
	logging.Debug().Str("strategy", "recurse").Msg("shown")
	assert.Contains(t, buf.String(), `"strategy":"recurse"`)
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFile(ctx, "existing", "base.yaml")
	ctx = logging.WithFile(ctx, "updated", "next.yaml")
	ctx = logging.WithStrategy(ctx, "unordered-array-like")
	ctx = logging.WithAlgorithm(ctx, "hirschberg")

	logging.FromContext(ctx).Info().Int("changes", 3).Msg("diff computed")

	tl.AssertContains(t, `"existing":"base.yaml"`)
	tl.AssertContains(t, `"updated":"next.yaml"`)
	tl.AssertContains(t, `"strategy":"unordered-array-like"`)
	tl.AssertContains(t, `"algorithm":"hirschberg"`)
	tl.AssertContains(t, `"changes":3`)
	assert.Equal(t, 1, tl.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is accepted
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	//nolint:staticcheck // nil context is accepted
	ctx := logging.WithLogger(nil, nil)
	require.NotNil(t, ctx)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info", level: "info", wantInfo: true},
		{name: "error only", level: "error"},
		{name: "unknown is info", level: "chatty", wantInfo: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			logger := logging.NewLoggerFromConfig(logging.Config{
				Level:  tc.level,
				Format: "json",
				Output: path,
			})

			logger.Debug().Msg("debug-event")
			logger.Info().Msg("info-event")
			logger.Error().Msg("error-event")

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDebug, bytes.Contains(content, []byte("debug-event")))
			assert.Equal(t, tc.wantInfo, bytes.Contains(content, []byte("info-event")))
			assert.Contains(t, string(content), "error-event")
			assert.Equal(t, logger.GetLevel(), zerolog.GlobalLevel())
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("Warning"))
	assert.Equal(t, zerolog.TraceLevel, logging.ParseLevel(" trace "))
	assert.Equal(t, zerolog.Disabled, logging.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
}

func TestCaptureDefault(t *testing.T) {
	tl := logging.CaptureDefault(t)
	logging.Debug().Str("strategy", "recurse").Msg("captured")
	tl.AssertContains(t, "captured")
	assert.Equal(t, 1, tl.Count())
	assert.Contains(t, tl.Output(), `"level":"debug"`)
}
