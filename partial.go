package shardlm

import (
	"github.com/shardlm/go-shardlm/reduce"
	"github.com/shardlm/go-shardlm/table"

	"gonum.org/v1/gonum/mat"
)

// normalEq holds the normal-equations products of one or more partitions,
// X'X and X'y. Partials combine by elementwise addition, which is associative
// and commutative, so any reduction tree shape yields the same sums.
type normalEq struct {
	xtx *mat.Dense
	xty *mat.Dense
}

func combineNormalEq(a, b normalEq) normalEq {
	var xtx, xty mat.Dense
	xtx.Add(a.xtx, b.xtx)
	xty.Add(a.xty, b.xty)
	return normalEq{xtx: &xtx, xty: &xty}
}

func partitionNormalEq(xBlock, yBlock *mat.Dense) normalEq {
	var xtx, xty mat.Dense
	xtx.Mul(xBlock.T(), xBlock)
	xty.Mul(xBlock.T(), yBlock)
	return normalEq{xtx: &xtx, xty: &xty}
}

// sufficientStats computes the global X'X and X'y over all partitions. A single
// partition is the trivial instance, computed without building a reduction tree.
func sufficientStats(x, y *table.Table, opt *FitOptions) (normalEq, error) {
	p := x.NumPartitions()
	if p == 1 {
		xBlock, err := x.Partition(0)
		if err != nil {
			return normalEq{}, err
		}
		yBlock, err := y.Partition(0)
		if err != nil {
			return normalEq{}, err
		}
		return partitionNormalEq(xBlock, yBlock), nil
	}

	partials := reduce.Map(p, func(i int) normalEq {
		xBlock, _ := x.Partition(i)
		yBlock, _ := y.Partition(i)
		return partitionNormalEq(xBlock, yBlock)
	}, opt.Parallelization)

	return reduce.Tree(partials, combineNormalEq, opt.BranchFactor)
}

// responseMean computes the global mean of the single response column. This is
// a separate aggregation pass that must complete before residual sums are
// computed, since every partition needs the same global mean.
func responseMean(y *table.Table, opt *FitOptions) (float64, error) {
	n := float64(y.NumRows())
	p := y.NumPartitions()
	if p == 1 {
		block, err := y.Partition(0)
		if err != nil {
			return 0, err
		}
		return mat.Sum(block) / n, nil
	}

	partials := reduce.Map(p, func(i int) float64 {
		block, _ := y.Partition(i)
		return mat.Sum(block)
	}, opt.Parallelization)

	total, err := reduce.Tree(partials, func(a, b float64) float64 { return a + b }, opt.BranchFactor)
	if err != nil {
		return 0, err
	}
	return total / n, nil
}

// residualSums holds the partial error sums of one or more partitions: the sum
// of squared residuals, the sum of squared deviations of the fitted values from
// the global response mean, and the same for the observed response.
type residualSums struct {
	sse float64
	ssr float64
	sst float64
}

func combineResidualSums(a, b residualSums) residualSums {
	return residualSums{
		sse: a.sse + b.sse,
		ssr: a.ssr + b.ssr,
		sst: a.sst + b.sst,
	}
}

func partitionResidualSums(xBlock, yBlock *mat.Dense, coef *mat.Dense, mean float64) residualSums {
	var fitted mat.Dense
	fitted.Mul(xBlock, coef)

	m, _ := xBlock.Dims()
	var sums residualSums
	for i := 0; i < m; i++ {
		f := fitted.At(i, 0)
		obs := yBlock.At(i, 0)

		resid := obs - f
		sums.sse += resid * resid

		df := f - mean
		sums.ssr += df * df

		dy := obs - mean
		sums.sst += dy * dy
	}
	return sums
}

// residualSumsOver computes the global (sse, ssr, sst) triple given the fitted
// coefficients and the global response mean, mirroring the structure of
// sufficientStats.
func residualSumsOver(x, y *table.Table, coef *mat.Dense, mean float64, opt *FitOptions) (residualSums, error) {
	p := x.NumPartitions()
	if p == 1 {
		xBlock, err := x.Partition(0)
		if err != nil {
			return residualSums{}, err
		}
		yBlock, err := y.Partition(0)
		if err != nil {
			return residualSums{}, err
		}
		return partitionResidualSums(xBlock, yBlock, coef, mean), nil
	}

	partials := reduce.Map(p, func(i int) residualSums {
		xBlock, _ := x.Partition(i)
		yBlock, _ := y.Partition(i)
		return partitionResidualSums(xBlock, yBlock, coef, mean)
	}, opt.Parallelization)

	return reduce.Tree(partials, combineResidualSums, opt.BranchFactor)
}
