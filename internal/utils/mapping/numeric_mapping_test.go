package mapping_test

import (
	"testing"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionOfDenom(t *testing.T) {
	tests := []struct {
		name    string
		denom   int64
		want    int32
		wantErr bool
	}{
		{name: "unit denominator", denom: 1, want: 0},
		{name: "cents", denom: 100, want: 2},
		{name: "mils", denom: 1000, want: 3},
		{name: "zero rejected", denom: 0, wantErr: true},
		{name: "negative rejected", denom: -100, wantErr: true},
		{name: "non power of ten rejected", denom: 30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapping.FractionOfDenom(tt.denom)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDomainNumeric(t *testing.T) {
	v, err := mapping.ToDomainNumeric(1234, 100)
	require.NoError(t, err)
	assert.Equal(t, "12.34", v.StringFixed())
	assert.Equal(t, int64(1234), v.Num())
	assert.Equal(t, int64(100), v.Denom())
}

// Summing stored rational pairs of mixed denominators must be exact: a
// fraction-3 value landing in a fraction-2 total keeps its thousandths
// instead of being truncated away.
func TestToDomainNumeric_MixedDenominatorSum(t *testing.T) {
	pairs := []struct {
		num   int64
		denom int64
	}{
		{num: 1500, denom: 1000}, // 1.500
		{num: 2500, denom: 100},  // 25.00
	}

	sum := domain.ZeroNumeric(2)
	for _, p := range pairs {
		v, err := mapping.ToDomainNumeric(p.num, p.denom)
		require.NoError(t, err)
		sum = sum.Add(v)
	}

	assert.Equal(t, "26.500", sum.StringFixed())
	assert.Equal(t, int64(26500), sum.Num())
	assert.Equal(t, int64(1000), sum.Denom())
}
