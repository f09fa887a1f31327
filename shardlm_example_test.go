package shardlm_test

import (
	"fmt"

	"github.com/shardlm/go-shardlm"
	"github.com/shardlm/go-shardlm/table"
)

func ExampleFit() {
	x, err := table.FromRows(table.FloatFields("const", "x"), [][]float64{
		{1, 1},
		{1, 2},
		{1, 3},
		{1, 4},
	})
	if err != nil {
		panic(err)
	}
	y, err := table.FromRows(table.FloatFields("y"), [][]float64{
		{2.5}, {4.5}, {6.5}, {8.5},
	})
	if err != nil {
		panic(err)
	}

	model, err := shardlm.Fit(x, y, nil)
	if err != nil {
		panic(err)
	}

	formula, err := model.Formula()
	if err != nil {
		panic(err)
	}
	fmt.Println(formula)
	for i, name := range model.PredictorNames() {
		fmt.Printf("%s: %.4f\n", name, model.Coef()[i])
	}
	// Output:
	// y ~ const + x
	// const: 0.5000
	// x: 2.0000
}

func ExampleFittedModel_Predict() {
	x, err := table.New(table.FloatFields("x"), [][][]float64{
		{{1}, {2}},
		{{3}, {4}},
	})
	if err != nil {
		panic(err)
	}
	y, err := table.New(table.FloatFields("y"), [][][]float64{
		{{2}, {4}},
		{{6}, {8}},
	})
	if err != nil {
		panic(err)
	}

	model, err := shardlm.Fit(x, y, nil)
	if err != nil {
		panic(err)
	}

	newData, err := table.FromRows(table.FloatFields("x"), [][]float64{{5}, {6}})
	if err != nil {
		panic(err)
	}
	preds, err := model.Predict(newData, nil)
	if err != nil {
		panic(err)
	}
	for _, pred := range preds {
		fmt.Printf("row %d: %.1f\n", pred.Row, pred.Value)
	}
	// Output:
	// row 0: 10.0
	// row 1: 12.0
}
