// Package model turns the cleaned table into a linear delay classifier and
// scores it on a held-out partition.
package model

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"FlightDelayAnalysis/src/dataset"
)

// FeatureNames lists the predictors in design-matrix order, after the
// intercept column.
var FeatureNames = []string{
	dataset.ColDepDelay,
	dataset.ColDistance,
	dataset.ColTaxiOut,
	dataset.ColTaxiIn,
	dataset.ColCarrier,
}

// Design is the modeling view of the table: rows with a missing arrival
// delay are gone, the carrier is ordinal-encoded, and every remaining
// missing predictor is zero.
type Design struct {
	// X is n×6: intercept, DEP_DELAY, DISTANCE, TAXI_OUT, TAXI_IN,
	// carrier code.
	X *mat.Dense
	// Y holds the 0/1 significant-delay labels.
	Y []float64
	// Carriers maps ordinal code (index) back to the carrier string.
	Carriers []string
	// Dropped counts rows excluded for a missing arrival delay.
	Dropped int
}

// NumColumns is the design-matrix width including the intercept.
const NumColumns = 6

// BuildDesign labels each flight with arr_delay > thresholdMinutes and
// assembles the feature matrix. Carrier codes are assigned by sorted
// distinct value, so the encoding depends only on the carriers present.
func BuildDesign(df dataframe.DataFrame, thresholdMinutes float64) *Design {
	arr := df.Col(dataset.ColArrDelay).Float()
	carriers := df.Col(dataset.ColCarrier).Records()
	dep := df.Col(dataset.ColDepDelay).Float()
	dist := df.Col(dataset.ColDistance).Float()
	taxiOut := df.Col(dataset.ColTaxiOut).Float()
	taxiIn := df.Col(dataset.ColTaxiIn).Float()

	var keep []int
	for i, v := range arr {
		if !math.IsNaN(v) {
			keep = append(keep, i)
		}
	}

	codes := make(map[string]float64)
	var distinct []string
	for _, i := range keep {
		if _, ok := codes[carriers[i]]; !ok {
			codes[carriers[i]] = 0
			distinct = append(distinct, carriers[i])
		}
	}
	sort.Strings(distinct)
	for code, c := range distinct {
		codes[c] = float64(code)
	}

	n := len(keep)
	var x *mat.Dense
	y := make([]float64, n)
	if n > 0 {
		x = mat.NewDense(n, NumColumns, nil)
	}
	for row, i := range keep {
		x.Set(row, 0, 1)
		x.Set(row, 1, zeroNaN(dep[i]))
		x.Set(row, 2, zeroNaN(dist[i]))
		x.Set(row, 3, zeroNaN(taxiOut[i]))
		x.Set(row, 4, zeroNaN(taxiIn[i]))
		x.Set(row, 5, codes[carriers[i]])
		if arr[i] > thresholdMinutes {
			y[row] = 1
		}
	}

	return &Design{X: x, Y: y, Carriers: distinct, Dropped: len(arr) - n}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
