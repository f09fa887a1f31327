// Package stats provides regression diagnostics computed on top of the shardlm
// fitter.
package stats

import (
	"errors"
	"fmt"

	"github.com/shardlm/go-shardlm"
	"github.com/shardlm/go-shardlm/table"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrMinimumPredictors = errors.New("need at least 2 predictors to compute VIF")
	ErrMinimumRows       = errors.New("must have at least 2 rows per predictor")
)

const interceptCol = "(intercept)"

// VarianceInflationFactor computes the VIF of every predictor column by
// regressing it on the remaining columns plus an intercept. A VIF near 1
// indicates an uncorrelated predictor; perfectly collinear predictors yield
// +Inf. The input table is materialized, so this is meant for diagnostics over
// modest row counts.
func VarianceInflationFactor(x *table.Table) (map[string]float64, error) {
	names := x.ColumnNames()
	if len(names) < 2 {
		return nil, ErrMinimumPredictors
	}
	m := x.NumRows()
	if m < 2 {
		return nil, ErrMinimumRows
	}

	dense := x.Dense()

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)

	vif := make(map[string]float64)
	for targetIdx, name := range names {
		design := mat.NewDense(m, len(names), nil)
		design.SetCol(0, ones)

		designNames := make([]string, 0, len(names))
		designNames = append(designNames, interceptCol)
		c := 1
		for otherIdx, otherName := range names {
			if otherIdx == targetIdx {
				continue
			}
			design.SetCol(c, mat.Col(nil, otherIdx, dense))
			designNames = append(designNames, otherName)
			c++
		}

		designTbl, err := table.FromDense(table.FloatFields(designNames...), design)
		if err != nil {
			return nil, err
		}
		targetTbl, err := table.FromDense(
			table.FloatFields(name),
			mat.NewDense(m, 1, mat.Col(nil, targetIdx, dense)),
		)
		if err != nil {
			return nil, err
		}

		model, err := shardlm.Fit(designTbl, targetTbl, nil)
		if err != nil {
			return nil, fmt.Errorf("regressing %s on the remaining predictors, %w", name, err)
		}

		vif[name] = 1.0 / (1.0 - model.RSquared())
	}
	return vif, nil
}
