// Package shardlm fits ordinary least squares linear models over row-partitioned
// tables. Per-partition sufficient statistics are computed independently and
// combined through a tree reduction, so a fit over many partitions produces the
// same model as a fit over a single partition holding the same rows.
package shardlm

import (
	"errors"
	"fmt"
	"math"

	mat_ "github.com/shardlm/go-shardlm/mat"
	"github.com/shardlm/go-shardlm/reduce"
	"github.com/shardlm/go-shardlm/table"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoPredictorTable        = errors.New("no predictor table")
	ErrNoResponseTable         = errors.New("no response table")
	ErrNonNumericColumn        = errors.New("column is not numeric")
	ErrResponseNotSingleColumn = errors.New("response table must have exactly one column")
	ErrPartitionCountMismatch  = errors.New("predictor and response partition counts do not match")
	ErrRowCountMismatch        = errors.New("predictor and response row counts do not match")
	ErrPartitionRowMismatch    = errors.New("predictor and response partition row counts do not match")
	ErrSingularGram            = errors.New("singular gram matrix")
	ErrNegativeBranchFactor    = errors.New("negative branch factor")
	ErrNegativeParallelization = errors.New("negative parallelization")
)

// FitOptions represents input options to run the OLS fit over a partitioned table
type FitOptions struct {
	// BranchFactor is the fan-in of the reduction tree combining partition
	// partials. Values below 2 fall back to the default of 2.
	BranchFactor int

	// Parallelization bounds how many partitions are processed concurrently.
	// 0 falls back to GOMAXPROCS.
	Parallelization int
}

// Validate runs basic validation on fit options
func (o *FitOptions) Validate() (*FitOptions, error) {
	if o == nil {
		o = NewDefaultFitOptions()
	}

	if o.BranchFactor < 0 {
		return nil, ErrNegativeBranchFactor
	}
	if o.Parallelization < 0 {
		return nil, ErrNegativeParallelization
	}
	return o, nil
}

// NewDefaultFitOptions returns a default set of fit options
func NewDefaultFitOptions() *FitOptions {
	return &FitOptions{
		BranchFactor:    reduce.DefaultBranchFactor,
		Parallelization: 0,
	}
}

// Fit estimates an OLS model of the response y on the predictors x. The two
// tables must be partitioned identically. Partition count 1 computes the
// sufficient statistics directly on the materialized block; higher counts map
// per-partition partials and combine them through a tree reduction, yielding
// the same statistics within floating point summation order.
func Fit(x, y *table.Table, opt *FitOptions) (*FittedModel, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := fitValidate(x, y); err != nil {
		return nil, err
	}

	eq, err := sufficientStats(x, y, opt)
	if err != nil {
		return nil, err
	}

	var inv mat.Dense
	if err := inv.Inverse(eq.xtx); err != nil {
		return nil, fmt.Errorf("%v, %w", err, ErrSingularGram)
	}

	var coefMx mat.Dense
	coefMx.Mul(&inv, eq.xty)

	mean, err := responseMean(y, opt)
	if err != nil {
		return nil, err
	}

	sums, err := residualSumsOver(x, y, &coefMx, mean, opt)
	if err != nil {
		return nil, err
	}

	n := float64(x.NumRows())
	k := float64(x.NumCols())
	sigma2 := sums.sse / (n - k)

	diag, err := mat_.Diagonal(&inv)
	if err != nil {
		return nil, err
	}
	stdErrs := make([]float64, len(diag))
	for i, d := range diag {
		stdErrs[i] = math.Sqrt(sigma2 * d)
	}

	return &FittedModel{
		predictorNames: x.ColumnNames(),
		responseName:   y.ColumnNames()[0],
		coef:           mat.Col(nil, 0, &coefMx),
		stdErrs:        stdErrs,
		sigma:          math.Sqrt(sigma2),
		rSquared:       sums.ssr / sums.sst,
		fStat:          ((sums.sst - sums.sse) / (k - 1)) / (sums.sse / (n - k)),
		rows:           n,
		partitions:     x.NumPartitions(),
	}, nil
}

func fitValidate(x, y *table.Table) error {
	if x == nil {
		return ErrNoPredictorTable
	}
	if y == nil {
		return ErrNoResponseTable
	}

	for _, field := range x.Fields() {
		if field.Kind != table.Float {
			return fmt.Errorf("predictor %s is %s, %w", field.Name, field.Kind, ErrNonNumericColumn)
		}
	}
	if y.NumCols() != 1 {
		return fmt.Errorf("got %d columns, %w", y.NumCols(), ErrResponseNotSingleColumn)
	}
	if y.Fields()[0].Kind != table.Float {
		return fmt.Errorf("response %s is %s, %w", y.Fields()[0].Name, y.Fields()[0].Kind, ErrNonNumericColumn)
	}
	if x.NumPartitions() != y.NumPartitions() {
		return fmt.Errorf("predictors have %d partitions and response has %d, %w",
			x.NumPartitions(), y.NumPartitions(), ErrPartitionCountMismatch)
	}
	if x.NumRows() != y.NumRows() {
		return fmt.Errorf("predictors have %d rows and response has %d, %w",
			x.NumRows(), y.NumRows(), ErrRowCountMismatch)
	}
	for i := 0; i < x.NumPartitions(); i++ {
		xm, err := x.PartitionRows(i)
		if err != nil {
			return err
		}
		ym, err := y.PartitionRows(i)
		if err != nil {
			return err
		}
		if xm != ym {
			return fmt.Errorf("partition %d has %d predictor rows and %d response rows, %w",
				i, xm, ym, ErrPartitionRowMismatch)
		}
	}
	return nil
}
