package shardlm

import (
	"errors"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

var ErrNoPredictors = errors.New("model has no predictors")

// DegreesOfFreedomModel returns the model degrees of freedom, one less than the
// number of predictors.
func (m *FittedModel) DegreesOfFreedomModel() int {
	return len(m.predictorNames) - 1
}

// DegreesOfFreedomError returns the error degrees of freedom, the number of
// training rows less the number of predictors, truncated to an integer.
func (m *FittedModel) DegreesOfFreedomError() int {
	return int(m.rows) - len(m.predictorNames)
}

// AdjustedRSquared returns the R-squared adjusted for the number of predictors.
func (m *FittedModel) AdjustedRSquared() float64 {
	k := float64(len(m.predictorNames))
	return 1.0 - ((1.0-m.rSquared)*(m.rows-1.0))/(m.rows-k-1.0)
}

// TValues returns the t-statistic of each coefficient, index aligned with the
// coefficients.
func (m *FittedModel) TValues() []float64 {
	tValues := make([]float64, len(m.coef))
	for i, c := range m.coef {
		tValues[i] = c / m.stdErrs[i]
	}
	return tValues
}

// PValues returns the two-sided p-value of each coefficient from a Student's-t
// distribution with the error degrees of freedom. Non-positive degrees of
// freedom yield NaN.
func (m *FittedModel) PValues() []float64 {
	pValues := make([]float64, len(m.coef))

	df := m.rows - float64(len(m.predictorNames))
	if df <= 0 {
		for i := range pValues {
			pValues[i] = math.NaN()
		}
		return pValues
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	for i, t := range m.TValues() {
		pValues[i] = 2.0 * dist.Survival(math.Abs(t))
	}
	return pValues
}

// Formula returns the model formula, e.g. "y ~ x0 + x1".
func (m *FittedModel) Formula() (string, error) {
	if len(m.predictorNames) == 0 {
		return "", ErrNoPredictors
	}
	return m.responseName + " ~ " + strings.Join(m.predictorNames, " + "), nil
}
