package keyed

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/types"
)

func TestDiffKeyOnly(t *testing.T) {
	existing := map[int]string{10: "X", 15: "Y"}
	updated := map[int]string{11: "X'", 15: "Y'"}

	changes := Diff(existing, updated, types.KeyOnly)
	assert.ElementsMatch(t, []Change[int, string]{
		Remove(10, "X"),
		Insert(11, "X'"),
	}, changes)

	got, err := Apply(map[int]string{10: "X", 15: "Y"}, changes)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{11: "X'", 15: "Y"}, got)
}

func TestDiffKeyAndValue(t *testing.T) {
	existing := map[int]string{10: "X", 15: "Y"}
	updated := map[int]string{11: "X'", 15: "Y'"}

	changes := Diff(existing, updated, types.KeyAndValue)
	assert.ElementsMatch(t, []Change[int, string]{
		Remove(10, "X"),
		Insert(11, "X'"),
		Remove(15, "Y"),
		Insert(15, "Y'"),
	}, changes)

	got, err := Apply(map[int]string{10: "X", 15: "Y"}, changes)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestDiffEqual(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	assert.Empty(t, Diff(m, map[string]int{"b": 2, "a": 1}, types.KeyAndValue))
	assert.Empty(t, Diff(map[string]int{}, map[string]int{}, types.KeyOnly))
}

func TestDiffReplace(t *testing.T) {
	existing := map[string]int{"a": 1, "b": 2, "c": 3}
	updated := map[string]int{"a": 1}

	changes := Diff(existing, updated, types.KeyAndValue)
	require.Len(t, changes, 1)
	assert.Equal(t, OpReplace, changes[0].Op)

	updated["z"] = 26
	assert.NotContains(t, changes[0].Entries, "z")

	got, err := Apply(existing, changes)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestApplyNil(t *testing.T) {
	got, err := Apply(nil, []Change[string, int]{Insert("a", 1)})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestApplyRejectsUnsupportedOps(t *testing.T) {
	for _, op := range []Op{OpChange, Op(9)} {
		m := map[string]int{"a": 1}
		got, err := Apply(m, []Change[string, int]{Insert("b", 2), {Op: op, Key: "a"}})
		require.Error(t, err)
		assert.True(t, errors.IsUnknownOp(err))
		assert.Equal(t, map[string]int{"a": 1}, got)
	}

	_, err := ApplyEntries([]Entry[string, int]{{"a", 1}}, []Change[string, int]{{Op: OpChange, Key: "a"}})
	assert.True(t, errors.IsUnknownOp(err))
}

// randomMap draws a map with few distinct keys so that the two sides of a
// diff overlap.
func randomMap(f *fuzz.Fuzzer) map[uint8]uint8 {
	var raw map[uint8]uint8
	f.Fuzz(&raw)
	m := make(map[uint8]uint8, len(raw))
	for k, v := range raw {
		m[k%8] = v % 3
	}
	return m
}

// keyOnlyResult is what applying a key-only changeset to a yields: the keys
// of b, with the values of a wherever a already held the key.
func keyOnlyResult[K comparable, V any](a, b map[K]V, replaced bool) map[K]V {
	want := make(map[K]V, len(b))
	for k, v := range b {
		if old, ok := a[k]; ok && !replaced {
			v = old
		}
		want[k] = v
	}
	return want
}

func TestRandomRoundTrip(t *testing.T) {
	f := fuzz.NewWithSeed(17).NilChance(0).NumElements(0, 12)
	for range 300 {
		a, b := randomMap(f), randomMap(f)

		changes := Diff(a, b, types.KeyAndValue)
		got, err := Apply(cloneMap(a), changes)
		require.NoError(t, err)
		assert.Equal(t, b, got, "%v -> %v", a, b)

		changes = Diff(a, b, types.KeyOnly)
		replaced := len(changes) == 1 && changes[0].Op == OpReplace
		got, err = Apply(cloneMap(a), changes)
		require.NoError(t, err)
		assert.Equal(t, keyOnlyResult(a, b, replaced), got, "%v -> %v", a, b)
	}
}

func TestDiffFunc(t *testing.T) {
	existing := map[string][]string{"a": {"x"}, "b": {"y"}}
	updated := map[string][]string{"a": {"x"}, "b": {"y", "z"}}
	eq := func(a, b []string) bool { return len(a) == len(b) }

	changes := DiffFunc(existing, updated, types.KeyAndValue, eq)
	require.Len(t, changes, 2)
	assert.Equal(t, "b", changes[0].Key)

	assert.Empty(t, DiffFunc(existing, updated, types.KeyOnly, func(a, b []string) bool {
		t.Fatal("values compared in key-only mode")
		return false
	}))
}

func TestEntries(t *testing.T) {
	existing := []Entry[string, int]{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}}
	updated := []Entry[string, int]{{"c", 4}, {"a", 3}, {"d", 5}}

	changes := DiffEntries(existing, updated, types.KeyAndValue)
	assert.Equal(t, []Change[string, int]{Insert("d", 5), Remove("b", 2)}, changes)

	got, err := ApplyEntries(existing, changes)
	require.NoError(t, err)
	assert.Equal(t, []Entry[string, int]{{"a", 3}, {"c", 4}, {"d", 5}}, got)
}

func TestEntriesValueChange(t *testing.T) {
	existing := []Entry[string, int]{{"a", 1}, {"b", 2}}
	updated := []Entry[string, int]{{"b", 3}, {"a", 1}}

	changes := DiffEntries(existing, updated, types.KeyAndValue)
	assert.Equal(t, []Change[string, int]{Remove("b", 2), Insert("b", 3)}, changes)
	got, err := ApplyEntries(existing, changes)
	require.NoError(t, err)
	assert.Equal(t, []Entry[string, int]{{"a", 1}, {"b", 3}}, got)
}

func TestOpText(t *testing.T) {
	for _, op := range []Op{OpInsert, OpRemove, OpReplace, OpChange} {
		text, err := op.MarshalText()
		require.NoError(t, err)
		var back Op
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, op, back)
	}
	assert.Equal(t, "insert(a=1)", Insert("a", 1).String())
	assert.Equal(t, "remove(a)", Remove("a", 1).String())
}
