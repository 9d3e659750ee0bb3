package processor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FlightDelayAnalysis/src/dataset"
)

func TestCarrierMeansExcludesMissing(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t,
		"OP_CARRIER,DEP_DELAY,ARR_DELAY\n"+
			"AA,10,8\n"+
			"AA,NA,NA\n"+
			"AA,20,4\n"+
			"DL,-5,-2\n")

	means := CarrierMeans(df)
	require.Len(t, means, 2)

	aa := means[0]
	assert.Equal(t, "AA", aa.Carrier)
	assert.Equal(t, 3, aa.Flights)
	// [10, missing, 20] averages to 15, not 10: the missing value counts
	// toward neither sum nor denominator.
	assert.InDelta(t, 15, aa.MeanDepDelay, 1e-9)
	assert.InDelta(t, 6, aa.MeanArrDelay, 1e-9)

	dl := means[1]
	assert.Equal(t, "DL", dl.Carrier)
	assert.Equal(t, 1, dl.Flights)
	assert.InDelta(t, -5, dl.MeanDepDelay, 1e-9)
}

func TestCarrierMeansAllMissing(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t, "OP_CARRIER,DEP_DELAY,ARR_DELAY\nAA,NA,NA\n")

	means := CarrierMeans(df)
	require.Len(t, means, 1)
	assert.True(t, math.IsNaN(means[0].MeanDepDelay))
	assert.Equal(t, 1, means[0].Flights)
}

func TestMonthDayMeans(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t,
		"FL_DATE,DEP_DELAY\n"+
			"2018-03-07,10\n"+
			"2018-03-07,20\n"+
			"2018-03-08,NA\n"+
			"2018-11-30,5\n")
	df, err := ParseFlightDates(df)
	require.NoError(t, err)

	grid, err := MonthDayMeans(df)
	require.NoError(t, err)

	assert.InDelta(t, 15, grid.Cell(3, 7), 1e-9)
	assert.Equal(t, 2, grid.Counts[2][6])
	assert.InDelta(t, 5, grid.Cell(11, 30), 1e-9)

	// A day whose only delay is missing has no mean.
	assert.True(t, math.IsNaN(grid.Cell(3, 8)))
	// Untouched cells stay empty.
	assert.True(t, math.IsNaN(grid.Cell(1, 1)))
	assert.Equal(t, 0, grid.Counts[0][0])
}

func TestMonthDayMeansRequiresCleanedTable(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t, "FL_DATE,DEP_DELAY\n2018-03-07,10\n")

	_, err := MonthDayMeans(df)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not cleaned")
}

func TestCorrelation(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t,
		"A,B,C\n"+
			"1,2,9\n"+
			"2,4,7\n"+
			"3,6,5\n"+
			"4,8,3\n")

	corr, err := Correlation(df, []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.InDelta(t, 1, corr.At(0, 0), 1e-9)
	assert.InDelta(t, 1, corr.At(1, 1), 1e-9)
	// B doubles A exactly, C decreases as A grows.
	assert.InDelta(t, 1, corr.At(0, 1), 1e-9)
	assert.InDelta(t, -1, corr.At(0, 2), 1e-9)
	assert.InDelta(t, corr.At(1, 2), corr.At(2, 1), 1e-12)
}

func TestCorrelationCompleteCase(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t,
		"A,B\n"+
			"1,1\n"+
			"2,2\n"+
			"100,NA\n"+
			"3,3\n")

	corr, err := Correlation(df, []string{"A", "B"})
	require.NoError(t, err)
	// The incomplete row is excluded entirely, leaving a perfect line.
	assert.InDelta(t, 1, corr.At(0, 1), 1e-9)
}

func TestCorrelationTooFewRows(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t, "A,B\n1,NA\n2,NA\n3,1\n")

	_, err := Correlation(df, []string{"A", "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete rows")
}

func TestCorrelationUnknownColumn(t *testing.T) {
	t.Parallel()
	df := frameFromCSV(t, "A\n1\n2\n")

	_, err := Correlation(df, []string{"A", dataset.ColDepDelay})
	require.Error(t, err)
}
