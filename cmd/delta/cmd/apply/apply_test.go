package apply

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/cmd/application"
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/logging"
)

func execute(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return format }}
	cmd := NewCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func fixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const orderedPatch = `strategy: ordered-array-like
ordered:
- op: delete
  index: 4
- op: replace
  index: 4
  value: e
- op: replace
  index: 5
  value: d
`

func TestApplyOrdered(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "word.yaml", "[t, e, s, t, i, n, g]\n")
	patch := fixture(t, dir, "patch.yaml", orderedPatch)

	out, err := execute(t, "json", doc, patch)
	require.NoError(t, err)
	assert.JSONEq(t, `["t","e","s","t","e","d"]`, out)
}

func TestApplyTable(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "word.yaml", "[t, e, s, t, i, n, g]\n")
	patch := fixture(t, dir, "patch.yaml", orderedPatch)

	out, err := execute(t, "table", doc, patch)
	require.NoError(t, err)
	assert.Contains(t, strings.ToUpper(out), "INDEX")
	assert.Contains(t, out, "d")
}

func TestApplyOutFile(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "labels.yaml", "a: one\nb: two\n")
	patch := fixture(t, dir, "patch.json", `{"strategy":"unordered-map-like","keyed":[{"op":"remove","key":"a","value":"one"},{"op":"insert","key":"c","value":"three"}]}`)
	result := filepath.Join(dir, "result.yaml")

	out, err := execute(t, "table", doc, patch, "--out", result)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(result)
	require.NoError(t, err)
	assert.Equal(t, "b: two\nc: three\n", string(data))
}

func TestApplyRemovalsOnly(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "labels.yaml", "a: one\nb: two\n")
	patch := fixture(t, dir, "patch.json", `{"strategy":"unordered-map-like","keyed":[{"op":"remove","key":"a","value":"one"},{"op":"insert","key":"c","value":"three"}]}`)

	out, err := execute(t, "yaml", doc, patch, "--only", "removals-only")
	require.NoError(t, err)
	assert.Equal(t, "b: two\n", out)
}

func TestApplyErrors(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "short.yaml", "[a]\n")
	patch := fixture(t, dir, "patch.yaml", orderedPatch)

	_, err := execute(t, "yaml", doc, patch)
	assert.True(t, errors.IsOutOfRange(err))

	_, err = execute(t, "binary", doc, patch)
	assert.True(t, errors.IsValidationError(err))

	_, err = execute(t, "yaml", doc, patch, "--patch-format", "toml")
	assert.True(t, errors.IsValidationError(err))
}

func TestApplyLogsContext(t *testing.T) {
	dir := t.TempDir()
	doc := fixture(t, dir, "word.yaml", "[t, e, s, t, i, n, g]\n")
	patch := fixture(t, dir, "patch.yaml", orderedPatch)

	tl := logging.NewTestLogger(t)
	app := &application.Mock{
		LoggerFunc:       func() *zerolog.Logger { return tl.Logger },
		OutputFormatFunc: func() string { return "json" },
	}
	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{doc, patch})
	require.NoError(t, cmd.Execute())

	tl.AssertContains(t, "Applying changeset")
	tl.AssertContains(t, `"target":"`+doc+`"`)
	tl.AssertContains(t, `"patch":"`+patch+`"`)
	tl.AssertContains(t, `"strategy":"ordered-array-like"`)
	tl.AssertContains(t, `"applied":3`)
}
