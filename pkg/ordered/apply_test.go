package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/pkg/errors"
)

func TestApplySlice(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		changes []Change[int]
		want    []int
	}{
		{
			name:    "replace",
			input:   []int{1, 2, 3},
			changes: []Change[int]{Replace(9, 1)},
			want:    []int{1, 9, 3},
		},
		{
			name:    "insert front and back",
			input:   []int{2},
			changes: []Change[int]{Insert(1, 0), Insert(3, 2)},
			want:    []int{1, 2, 3},
		},
		{
			name:    "ranged delete is inclusive",
			input:   []int{0, 1, 2, 3, 4},
			changes: []Change[int]{DeleteRange[int](1, 3)},
			want:    []int{0, 4},
		},
		{
			name:    "swap",
			input:   []int{1, 2, 3},
			changes: []Change[int]{Swap[int](0, 2)},
			want:    []int{3, 2, 1},
		},
		{
			name:    "positions follow earlier changes",
			input:   []int{1, 2, 3},
			changes: []Change[int]{Delete[int](0), Insert(7, 0), Replace(8, 2)},
			want:    []int{7, 2, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplySlice(tt.input, tt.changes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		change Change[int]
	}{
		{"replace past end", Replace(1, 3)},
		{"insert past end", Insert(1, 4)},
		{"negative delete", Delete[int](-1)},
		{"range past end", DeleteRange[int](1, 3)},
		{"inverted range", DeleteRange[int](2, 1)},
		{"swap past end", Swap[int](0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplySlice([]int{1, 2, 3}, []Change[int]{tt.change})
			require.Error(t, err)
			assert.True(t, errors.IsOutOfRange(err))

			var idx *errors.IndexError
			assert.ErrorAs(t, err, &idx)
		})
	}
}

func TestApplyKeepsPrefix(t *testing.T) {
	got, err := ApplySlice([]int{1, 2}, []Change[int]{Insert(0, 0), Replace(5, 7)})
	require.Error(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestApplyUnknownOp(t *testing.T) {
	_, err := ApplySlice([]int{1}, []Change[int]{{Op: Op(7)}})
	assert.True(t, errors.IsUnknownOp(err))
}

func TestStats(t *testing.T) {
	s := Stats([]Change[int]{Replace(1, 0), Insert(2, 1), DeleteRange[int](0, 2), Delete[int](0), Swap[int](0, 1)})
	assert.Equal(t, Summary{Replaced: 1, Inserted: 1, Deleted: 4, Swapped: 1}, s)
	assert.Equal(t, 7, s.Total())
}
