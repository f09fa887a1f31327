package stats

import (
	"math"
	"testing"

	"github.com/shardlm/go-shardlm/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarianceInflationFactorOrthogonal(t *testing.T) {
	// mean-zero orthogonal predictors carry no shared variance
	x, err := table.FromRows(table.FloatFields("a", "b"), [][]float64{
		{1, 1},
		{-1, 1},
		{1, -1},
		{-1, -1},
	})
	require.Nil(t, err)

	vif, err := VarianceInflationFactor(x)
	require.Nil(t, err)
	require.Len(t, vif, 2)

	assert.InDelta(t, 1.0, vif["a"], 1e-9)
	assert.InDelta(t, 1.0, vif["b"], 1e-9)
}

func TestVarianceInflationFactorCollinear(t *testing.T) {
	x, err := table.New(table.FloatFields("a", "b"), [][][]float64{
		{{1, 2}, {2, 4}},
		{{3, 6}, {4, 8}},
	})
	require.Nil(t, err)

	vif, err := VarianceInflationFactor(x)
	require.Nil(t, err)

	// R-squared of the auxiliary regression is 1 up to float rounding, so the
	// VIF either overflows to Inf or lands at an enormous magnitude
	assert.True(t, math.IsInf(vif["a"], 0) || math.Abs(vif["a"]) > 1e9,
		"perfectly collinear predictor has an exploding VIF, got %v", vif["a"])
	assert.True(t, math.IsInf(vif["b"], 0) || math.Abs(vif["b"]) > 1e9,
		"perfectly collinear predictor has an exploding VIF, got %v", vif["b"])
}

func TestVarianceInflationFactorErrors(t *testing.T) {
	single, err := table.FromRows(table.FloatFields("a"), [][]float64{{1}, {2}})
	require.Nil(t, err)
	_, err = VarianceInflationFactor(single)
	require.ErrorIs(t, err, ErrMinimumPredictors)

	short, err := table.FromRows(table.FloatFields("a", "b"), [][]float64{{1, 2}})
	require.Nil(t, err)
	_, err = VarianceInflationFactor(short)
	require.ErrorIs(t, err, ErrMinimumRows)
}
