package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// syntheticDesign builds a design whose second column is the row index,
// which makes rows traceable across a split.
func syntheticDesign(labels []float64) *Design {
	n := len(labels)
	x := mat.NewDense(n, NumColumns, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
	}
	return &Design{X: x, Y: labels}
}

func labelsWithPositives(n, positives int) []float64 {
	y := make([]float64, n)
	for i := 0; i < positives; i++ {
		y[i*2] = 1 // spread them out
	}
	return y
}

func rowIDs(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	ids := make([]float64, rows)
	for i := range ids {
		ids[i] = x.At(i, 1)
	}
	return ids
}

func TestStratifiedSplitPartition(t *testing.T) {
	t.Parallel()
	d := syntheticDesign(labelsWithPositives(20, 5))

	split, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(123)))
	require.NoError(t, err)

	seen := make(map[float64]int)
	for _, id := range rowIDs(split.XTrain) {
		seen[id]++
	}
	for _, id := range rowIDs(split.XTest) {
		seen[id]++
	}
	require.Len(t, seen, 20, "every row appears")
	for id, count := range seen {
		assert.Equal(t, 1, count, "row %v appears exactly once", id)
	}
}

func TestStratifiedSplitProportions(t *testing.T) {
	t.Parallel()
	d := syntheticDesign(labelsWithPositives(100, 20))

	split, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(123)))
	require.NoError(t, err)

	assert.Len(t, split.YTrain, 80)
	assert.Len(t, split.YTest, 20)
	assert.InDelta(t, 16, countOnes(split.YTrain), 0.5, "80% of the 20 positives train")
	assert.InDelta(t, 4, countOnes(split.YTest), 0.5)
}

func TestStratifiedSplitLabelsFollowRows(t *testing.T) {
	t.Parallel()
	labels := labelsWithPositives(30, 8)
	d := syntheticDesign(labels)

	split, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	for i, id := range rowIDs(split.XTrain) {
		assert.Equal(t, labels[int(id)], split.YTrain[i], "train row %d keeps its label", i)
	}
	for i, id := range rowIDs(split.XTest) {
		assert.Equal(t, labels[int(id)], split.YTest[i], "test row %d keeps its label", i)
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	t.Parallel()
	d := syntheticDesign(labelsWithPositives(40, 10))

	first, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(123)))
	require.NoError(t, err)
	second, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(123)))
	require.NoError(t, err)

	assert.Equal(t, rowIDs(first.XTrain), rowIDs(second.XTrain))
	assert.Equal(t, rowIDs(first.XTest), rowIDs(second.XTest))
}

func TestStratifiedSplitEachClassInEachSide(t *testing.T) {
	t.Parallel()
	// Two positives is the minimum: one must land on each side.
	d := syntheticDesign([]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 1})

	split, err := StratifiedSplit(d, 0.8, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, 1, countOnes(split.YTrain))
	assert.Equal(t, 1, countOnes(split.YTest))
}

func TestStratifiedSplitErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		labels []float64
		frac   float64
	}{
		{name: "single class", labels: []float64{0, 0, 0, 0}, frac: 0.8},
		{name: "one positive row", labels: []float64{0, 0, 0, 1}, frac: 0.8},
		{name: "fraction zero", labels: []float64{0, 0, 1, 1}, frac: 0},
		{name: "fraction one", labels: []float64{0, 0, 1, 1}, frac: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := syntheticDesign(tt.labels)
			_, err := StratifiedSplit(d, tt.frac, rand.New(rand.NewSource(1)))
			require.Error(t, err)

			var partErr *PartitionError
			assert.ErrorAs(t, err, &partErr)
		})
	}
}

func countOnes(y []float64) int {
	n := 0
	for _, v := range y {
		if v == 1 {
			n++
		}
	}
	return n
}
