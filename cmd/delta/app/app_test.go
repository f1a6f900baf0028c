package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/pkg/errors"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Options verifies functional options override loaded state.
func TestApp_Options(t *testing.T) {
	logger := zerolog.Nop()
	config := &Config{Format: "json", Algorithm: "levenshtein", Strategy: "unordered-array-like", MapMode: "key-only"}

	app, err := New("dev", "", "", "", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)

	assert.Same(t, &logger, app.Logger())
	assert.Equal(t, "json", app.OutputFormat())
	assert.Equal(t, "levenshtein", app.Algorithm())
	assert.Equal(t, "unordered-array-like", app.Strategy())
	assert.Equal(t, "key-only", app.MapMode())
}

// run executes the root command and captures stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logger := zerolog.Nop()
	app, err := New("1.2.3", "abc", "today", "test", WithLogger(&logger))
	require.NoError(t, err)

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_Version(t *testing.T) {
	out, err := run(t, "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "1.2.3"`)
	assert.Contains(t, out, `"commit": "abc"`)
}

func TestExecute_DiffThenApply(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.yaml", "- t\n- e\n- s\n- t\n- i\n- n\n- g\n")
	updated := writeFile(t, dir, "new.yaml", "- t\n- e\n- s\n- t\n- e\n- d\n")
	patch := filepath.Join(dir, "patch.yaml")
	result := filepath.Join(dir, "result.yaml")

	_, err := run(t, "diff", old, updated, "--algorithm", "levenshtein", "--out", patch)
	require.NoError(t, err)

	data, err := os.ReadFile(patch)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strategy: ordered-array-like")
	assert.Contains(t, string(data), "op: delete")

	_, err = run(t, "apply", old, patch, "--out", result)
	require.NoError(t, err)

	got, err := os.ReadFile(result)
	require.NoError(t, err)
	assert.Equal(t, "- t\n- e\n- s\n- t\n- e\n- d\n", string(got))
}

func TestExecute_DiffFormats(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.json", `{"a": "1", "b": "2"}`)
	updated := writeFile(t, dir, "new.json", `{"b": "3", "c": "4"}`)

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"strategy": "unordered-map-like"`, `"op": "remove"`, `"key": "c"`}},
		{"yaml", []string{"strategy: unordered-map-like", "op: insert"}},
		{"table", []string{"remove", "insert", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "diff", old, updated, "-o", tt.format)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestExecute_BinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.yaml", "- a\n- b\n- b\n- c\n")
	updated := writeFile(t, dir, "new.yaml", "- b\n- c\n- c\n- d\n")

	out, err := run(t, "diff", old, updated, "--strategy", "unordered-array-like", "-o", "binary")
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]+\n$`, out)

	patch := writeFile(t, dir, "patch.hex", out)
	got, err := run(t, "apply", old, patch, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `["b","c","c","d"]`, got)
}

func TestExecute_ApplyOnly(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.yaml", "a: 1\nb: 2\n")
	updated := writeFile(t, dir, "new.yaml", "b: 3\nc: 4\n")

	patch, err := run(t, "diff", old, updated, "-o", "json")
	require.NoError(t, err)
	patchPath := writeFile(t, dir, "patch.json", patch)

	got, err := run(t, "apply", old, patchPath, "--only", "additions-only", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "1", "b": "2", "c": "4"}`, got)
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.yaml", "- a\n")
	m := writeFile(t, dir, "map.yaml", "a: 1\n")

	_, err := run(t, "diff", list, m)
	assert.True(t, errors.IsValidationError(err))

	_, err = run(t, "diff", list, list, "-o", "wide")
	assert.True(t, errors.IsValidationError(err))

	_, err = run(t, "diff", list, list, "--algorithm", "myers")
	assert.Error(t, err)

	_, err = run(t, "apply", list, list, "--only", "everything")
	assert.True(t, errors.IsValidationError(err))

	_, err = run(t, "apply", list, filepath.Join(dir, "missing.yaml"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	_, err = run(t, "diff", list)
	assert.Error(t, err)
}

func TestExecute_ConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "delta.yaml", "strategy: unordered-array-like\nformat: json\n")
	old := writeFile(t, dir, "old.yaml", "- a\n- b\n")
	updated := writeFile(t, dir, "new.yaml", "- b\n- a\n")

	out, err := run(t, "--config", cfg, "diff", old, updated)
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "unordered-array-like"`)
	assert.NotContains(t, out, `"ordered":`)

	_, err = run(t, "--config", filepath.Join(dir, "nope.yaml"), "version")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
