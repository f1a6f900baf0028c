package diff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/cmd/application"
	"github.com/agentstation/delta/internal/document"
	"github.com/agentstation/delta/pkg/logging"
	"github.com/agentstation/delta/pkg/types"
)

func execute(t *testing.T, app application.Application, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiffTable(t *testing.T) {
	old := fixture(t, "old.yaml", "- 10\n- 15\n- 20\n- 25\n- 30\n")
	updated := fixture(t, "new.yaml", "[]\n")
	app := &application.Mock{OutputFormatFunc: func() string { return "table" }}

	out, errOut, err := execute(t, app, old, updated, "--strategy", "unordered-array-like")
	require.NoError(t, err)
	assert.Contains(t, out, "replace")
	assert.Contains(t, errOut, "1 change(s), strategy unordered-array-like")
}

func TestDiffNoChanges(t *testing.T) {
	doc := fixture(t, "doc.yaml", "- a\n- b\n")
	app := &application.Mock{OutputFormatFunc: func() string { return "table" }}

	out, _, err := execute(t, app, doc, doc)
	require.NoError(t, err)
	assert.Equal(t, "No changes detected\n", out)
}

func TestDiffMapIgnoresConfiguredListStrategy(t *testing.T) {
	old := fixture(t, "old.yaml", "10: X\n15: Y\n")
	updated := fixture(t, "new.yaml", "11: X'\n15: Y'\n")
	app := &application.Mock{
		StrategyFunc: func() string { return "unordered-array-like" },
		MapModeFunc:  func() string { return "key-only" },
	}

	out, _, err := execute(t, app, old, updated)
	require.NoError(t, err)

	patch, err := document.ParsePatch([]byte(out), "-", "yaml")
	require.NoError(t, err)
	assert.Equal(t, types.StrategyUnorderedMapLike, patch.Strategy)
	assert.Len(t, patch.Keyed, 2)
	for _, c := range patch.Keyed {
		assert.NotEqual(t, "15", c.Key)
	}
}

func TestDiffExplicitStrategyMismatch(t *testing.T) {
	m := fixture(t, "m.yaml", "a: 1\n")
	_, _, err := execute(t, &application.Mock{}, m, m, "--strategy", "ordered-array-like")
	assert.Error(t, err)
}

func TestDiffLogsDebugEvent(t *testing.T) {
	tl := logging.NewTestLogger(t)
	old := fixture(t, "old.yaml", "- a\n")
	updated := fixture(t, "new.yaml", "- b\n")
	app := &application.Mock{LoggerFunc: func() *zerolog.Logger { return tl.Logger }}

	_, _, err := execute(t, app, old, updated, "--algorithm", "levenshtein")
	require.NoError(t, err)
	tl.AssertContains(t, "Computed changeset")
	tl.AssertContains(t, `"algorithm":"levenshtein"`)
	tl.AssertContains(t, `"strategy":"ordered-array-like"`)
	tl.AssertContains(t, `"existing":"`+old+`"`)
	tl.AssertContains(t, `"updated":"`+updated+`"`)
	tl.AssertContains(t, `"existing_items":1`)
}
