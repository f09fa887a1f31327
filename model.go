package shardlm

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
)

var (
	ErrModelLenMismatch      = errors.New("predictor names, coefficients, and standard errors must have the same length")
	ErrInvalidPartitionCount = errors.New("model partition count must be at least 1")
)

// FittedModel is the immutable result of a Fit call. It is safe to share across
// concurrent Predict and Summary calls.
type FittedModel struct {
	predictorNames []string
	responseName   string
	coef           []float64
	stdErrs        []float64
	sigma          float64
	rSquared       float64
	fStat          float64
	rows           float64
	partitions     int
}

// PredictorNames returns the predictor column names in design matrix order.
func (m *FittedModel) PredictorNames() []string {
	names := make([]string, len(m.predictorNames))
	copy(names, m.predictorNames)
	return names
}

// ResponseName returns the name of the response column.
func (m *FittedModel) ResponseName() string {
	return m.responseName
}

// Coef returns a slice of the fitted coefficients in the same order as the
// predictor names.
func (m *FittedModel) Coef() []float64 {
	c := make([]float64, len(m.coef))
	copy(c, m.coef)
	return c
}

// StandardErrors returns the coefficient standard errors, index aligned with
// the coefficients.
func (m *FittedModel) StandardErrors() []float64 {
	se := make([]float64, len(m.stdErrs))
	copy(se, m.stdErrs)
	return se
}

// ResidualStdError returns sigma, the standard error of the residuals.
func (m *FittedModel) ResidualStdError() float64 {
	return m.sigma
}

// RSquared returns the coefficient of determination of the fit.
func (m *FittedModel) RSquared() float64 {
	return m.rSquared
}

// FStatistic returns the F-statistic of the fit.
func (m *FittedModel) FStatistic() float64 {
	return m.fStat
}

// NumRows returns the total number of training rows.
func (m *FittedModel) NumRows() float64 {
	return m.rows
}

// NumPartitions returns the number of partitions the model was trained over.
func (m *FittedModel) NumPartitions() int {
	return m.partitions
}

// Model represents a serializeable format of a FittedModel. This should be
// generated from a FittedModel call to Model().
type Model struct {
	PredictorNames   []string  `json:"predictor_names"`
	ResponseName     string    `json:"response_name"`
	Coefficients     []float64 `json:"coefficients"`
	StandardErrors   []float64 `json:"standard_errors"`
	ResidualStdError float64   `json:"residual_std_error"`
	RSquared         float64   `json:"r_squared"`
	FStatistic       float64   `json:"f_statistic"`
	NumRows          float64   `json:"num_rows"`
	NumPartitions    int       `json:"num_partitions"`
}

// Model returns a serializeable copy of the fitted model.
func (m *FittedModel) Model() Model {
	return Model{
		PredictorNames:   m.PredictorNames(),
		ResponseName:     m.responseName,
		Coefficients:     m.Coef(),
		StandardErrors:   m.StandardErrors(),
		ResidualStdError: m.sigma,
		RSquared:         m.rSquared,
		FStatistic:       m.fStat,
		NumRows:          m.rows,
		NumPartitions:    m.partitions,
	}
}

// NewFromModel creates a FittedModel from a pre-existing serialized model.
func NewFromModel(model Model) (*FittedModel, error) {
	if len(model.PredictorNames) != len(model.Coefficients) ||
		len(model.Coefficients) != len(model.StandardErrors) {
		return nil, fmt.Errorf("%d names, %d coefficients, %d standard errors, %w",
			len(model.PredictorNames), len(model.Coefficients), len(model.StandardErrors), ErrModelLenMismatch)
	}
	if model.NumPartitions < 1 {
		return nil, fmt.Errorf("got %d, %w", model.NumPartitions, ErrInvalidPartitionCount)
	}

	names := make([]string, len(model.PredictorNames))
	copy(names, model.PredictorNames)
	coef := make([]float64, len(model.Coefficients))
	copy(coef, model.Coefficients)
	stdErrs := make([]float64, len(model.StandardErrors))
	copy(stdErrs, model.StandardErrors)

	return &FittedModel{
		predictorNames: names,
		responseName:   model.ResponseName,
		coef:           coef,
		stdErrs:        stdErrs,
		sigma:          model.ResidualStdError,
		rSquared:       model.RSquared,
		fStat:          model.FStatistic,
		rows:           model.NumRows,
		partitions:     model.NumPartitions,
	}, nil
}

// Summary writes a fixed-width report of the fitted model to w with the
// per-predictor estimates, standard errors, t-values, and p-values followed by
// the residual standard error, R-squared values, and F-statistic.
func (m *FittedModel) Summary(w io.Writer) error {
	formula, err := m.Formula()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Formula: %s\n\n", formula); err != nil {
		return err
	}

	tValues := m.TValues()
	pValues := m.PValues()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "Predictor\tEstimate\tStd. Error\tt value\tPr(>|t|)"); err != nil {
		return err
	}
	for i, name := range m.predictorNames {
		if _, err := fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n",
			name, m.coef[i], m.stdErrs[i], tValues[i], pValues[i]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nResidual standard error: %.6g on %d degrees of freedom\n",
		m.sigma, m.DegreesOfFreedomError()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Multiple R-squared: %.4f, Adjusted R-squared: %.4f\n",
		m.rSquared, m.AdjustedRSquared()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "F-statistic: %.5g on %d and %d degrees of freedom\n",
		m.fStat, m.DegreesOfFreedomModel(), m.DegreesOfFreedomError()); err != nil {
		return err
	}
	return nil
}
