package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/delta/pkg/types"
)

func TestParseStrategyType(t *testing.T) {
	for _, st := range types.StrategyTypes() {
		parsed, err := types.ParseStrategyType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	_, err := types.ParseStrategyType("sorted")
	assert.Error(t, err)
	assert.False(t, types.StrategyType("sorted").IsValid())
}

func TestParseMapMode(t *testing.T) {
	tests := []struct {
		in      string
		want    types.MapMode
		wantErr bool
	}{
		{in: "key-only", want: types.KeyOnly},
		{in: "key_only", want: types.KeyOnly},
		{in: "key-and-value", want: types.KeyAndValue},
		{in: "", want: types.KeyAndValue},
		{in: "values", want: types.KeyAndValue, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := types.ParseMapMode(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, "key-only", types.KeyOnly.String())
	assert.Equal(t, "MapMode(7)", types.MapMode(7).String())
}
