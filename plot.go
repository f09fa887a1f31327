package shardlm

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineFit generates an echart line chart for a set of predictions plotting the
// actual values along with the fitted values by row index. NaN predictions are
// skipped.
func LineFit(title string, preds []Prediction, actual []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	rows := make([]int, 0, len(preds))
	lineDataActual := make([]opts.LineData, 0, len(preds))
	lineDataFitted := make([]opts.LineData, 0, len(preds))

	for _, p := range preds {
		if math.IsNaN(p.Value) {
			continue
		}
		rows = append(rows, p.Row)
		lineDataFitted = append(lineDataFitted, opts.LineData{Value: p.Value})
		if p.Row < len(actual) {
			lineDataActual = append(lineDataActual, opts.LineData{Value: actual[p.Row]})
		}
	}

	line.SetXAxis(rows).
		AddSeries("Actual", lineDataActual).
		AddSeries("Fitted", lineDataFitted)
	return line
}
