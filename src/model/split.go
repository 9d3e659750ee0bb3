package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PartitionError reports a train/test split that cannot satisfy
// stratification.
type PartitionError struct {
	Reason string
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("train/test partition: %s", e.Reason)
}

// Split is one stratified train/test partition pair. Every design row is
// in exactly one side.
type Split struct {
	XTrain, XTest *mat.Dense
	YTrain, YTest []float64
}

// StratifiedSplit partitions the design rows so each label class keeps
// roughly trainFrac of its rows in the training side, with at least one
// row of each class per side. The rng makes the shuffle reproducible.
func StratifiedSplit(d *Design, trainFrac float64, rng *rand.Rand) (*Split, error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, &PartitionError{Reason: fmt.Sprintf("train fraction %v outside (0,1)", trainFrac)}
	}

	byClass := map[float64][]int{}
	for i, label := range d.Y {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, &PartitionError{Reason: "labels contain a single class"}
	}

	var trainIdx, testIdx []int
	for _, label := range []float64{0, 1} {
		idx := byClass[label]
		if len(idx) < 2 {
			return nil, &PartitionError{
				Reason: fmt.Sprintf("class %v has %d rows, need at least 2", label, len(idx)),
			}
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTrain := int(math.Round(trainFrac * float64(len(idx))))
		if nTrain < 1 {
			nTrain = 1
		}
		if nTrain > len(idx)-1 {
			nTrain = len(idx) - 1
		}
		trainIdx = append(trainIdx, idx[:nTrain]...)
		testIdx = append(testIdx, idx[nTrain:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return &Split{
		XTrain: takeRows(d.X, trainIdx),
		XTest:  takeRows(d.X, testIdx),
		YTrain: takeLabels(d.Y, trainIdx),
		YTest:  takeLabels(d.Y, testIdx),
	}, nil
}

func takeRows(x *mat.Dense, idx []int) *mat.Dense {
	_, cols := x.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for row, i := range idx {
		out.SetRow(row, mat.Row(nil, i, x))
	}
	return out
}

func takeLabels(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for row, i := range idx {
		out[row] = y[i]
	}
	return out
}
