package shardlm

import (
	"errors"
	"fmt"

	"github.com/shardlm/go-shardlm/reduce"
	"github.com/shardlm/go-shardlm/table"

	"gonum.org/v1/gonum/mat"
)

var ErrMissingPredictors = errors.New("input is missing model predictors")

// Prediction pairs a 0-based global row index with its predicted value. Row
// indices are contiguous and follow the input's partition order.
type Prediction struct {
	Row   int     `json:"row"`
	Value float64 `json:"value"`
}

// Predict applies the fitted coefficients to new data, producing one prediction
// per input row. Every model predictor must be present among the input columns;
// extra columns are ignored. Partitions are processed independently and the two
// partitioning-dependent paths yield identical row/value pairs for the same
// logical rows.
func (m *FittedModel) Predict(newData *table.Table, opt *FitOptions) ([]Prediction, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if newData == nil {
		return nil, ErrNoPredictorTable
	}

	sel, err := newData.Select(m.predictorNames...)
	if err != nil {
		if errors.Is(err, table.ErrMissingColumns) {
			return nil, fmt.Errorf("%v, %w", err, ErrMissingPredictors)
		}
		return nil, err
	}

	coefMx := mat.NewDense(len(m.coef), 1, m.Coef())

	partitionValues := reduce.Map(sel.NumPartitions(), func(i int) []float64 {
		block, _ := sel.Partition(i)
		var res mat.Dense
		res.Mul(block, coefMx)
		return mat.Col(nil, 0, &res)
	}, opt.Parallelization)

	preds := make([]Prediction, 0, sel.NumRows())
	row := 0
	for _, values := range partitionValues {
		for _, v := range values {
			preds = append(preds, Prediction{Row: row, Value: v})
			row++
		}
	}
	return preds, nil
}
