package model

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func designFrame(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(csv),
		dataframe.HasHeader(true),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	require.NoError(t, df.Err)
	return df
}

const designHeader = "OP_CARRIER,DEP_DELAY,ARR_DELAY,DISTANCE,TAXI_OUT,TAXI_IN\n"

func TestBuildDesignLabels(t *testing.T) {
	t.Parallel()
	df := designFrame(t, designHeader+
		"AA,5,10,800,15,7\n"+
		"AA,50,40,800,15,7\n"+
		"AA,-3,-5,800,15,7\n")

	d := BuildDesign(df, 30)

	// arr_delay = [10, 40, -5] labels as [0, 1, 0]: strictly greater
	// than the threshold counts.
	assert.Equal(t, []float64{0, 1, 0}, d.Y)
	assert.Zero(t, d.Dropped)
}

func TestBuildDesignThresholdIsStrict(t *testing.T) {
	t.Parallel()
	df := designFrame(t, designHeader+
		"AA,5,30,800,15,7\n"+
		"AA,5,31,800,15,7\n")

	d := BuildDesign(df, 30)
	assert.Equal(t, []float64{0, 1}, d.Y)
}

func TestBuildDesignExcludesMissingTarget(t *testing.T) {
	t.Parallel()
	df := designFrame(t, designHeader+
		"AA,5,10,800,15,7\n"+
		"DL,9,NA,700,10,4\n"+
		"AA,50,40,800,15,7\n")

	d := BuildDesign(df, 30)

	assert.Equal(t, 1, d.Dropped)
	assert.Equal(t, []float64{0, 1}, d.Y)
	rows, cols := d.X.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, NumColumns, cols)
	// The dropped DL row contributes no carrier either.
	assert.Equal(t, []string{"AA"}, d.Carriers)
}

func TestBuildDesignCarrierEncoding(t *testing.T) {
	t.Parallel()
	df := designFrame(t, designHeader+
		"UA,1,1,800,15,7\n"+
		"AA,2,2,800,15,7\n"+
		"DL,3,3,800,15,7\n"+
		"UA,4,4,800,15,7\n")

	d := BuildDesign(df, 30)

	// Ordinal codes follow the sorted distinct carriers.
	assert.Equal(t, []string{"AA", "DL", "UA"}, d.Carriers)
	assert.InDelta(t, 2, d.X.At(0, 5), 1e-12) // UA
	assert.InDelta(t, 0, d.X.At(1, 5), 1e-12) // AA
	assert.InDelta(t, 1, d.X.At(2, 5), 1e-12) // DL
	assert.InDelta(t, 2, d.X.At(3, 5), 1e-12) // UA
}

func TestBuildDesignFillsMissingPredictors(t *testing.T) {
	t.Parallel()
	df := designFrame(t, designHeader+
		"AA,NA,10,NA,NA,NA\n")

	d := BuildDesign(df, 30)

	require.Equal(t, 1, len(d.Y))
	assert.InDelta(t, 1, d.X.At(0, 0), 1e-12, "intercept")
	for col := 1; col <= 4; col++ {
		assert.InDelta(t, 0, d.X.At(0, col), 1e-12, "missing predictor column %d", col)
	}
}
