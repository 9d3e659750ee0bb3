package processor

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"FlightDelayAnalysis/src/dataset"
)

// CarrierMean is the per-carrier reduction of the delay columns. Means use
// na.rm semantics: missing delays count toward neither sum nor denominator.
type CarrierMean struct {
	Carrier      string
	Flights      int
	MeanDepDelay float64
	MeanArrDelay float64
}

// Month/day grid dimensions; all years fold onto the same cells.
const (
	GridMonths = 12
	GridDays   = 31
)

// MonthDayGrid holds the mean departure delay per (month, day-of-month)
// cell. Cells with no observations stay NaN.
type MonthDayGrid struct {
	Cells  [GridMonths][GridDays]float64
	Counts [GridMonths][GridDays]int
}

// Cell returns the mean for 1-based month and day.
func (g *MonthDayGrid) Cell(month, day int) float64 {
	return g.Cells[month-1][day-1]
}

type meanAcc struct {
	sum   float64
	count int
}

func (a *meanAcc) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.sum += v
	a.count++
}

func (a *meanAcc) mean() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.count)
}

// CarrierMeans reduces the table to one row per carrier, ordered by
// carrier code. The visualizer reorders by magnitude for the bar charts.
func CarrierMeans(df dataframe.DataFrame) []CarrierMean {
	carriers := df.Col(dataset.ColCarrier).Records()
	dep := df.Col(dataset.ColDepDelay).Float()
	arr := df.Col(dataset.ColArrDelay).Float()

	type carrierAcc struct {
		flights int
		dep     meanAcc
		arr     meanAcc
	}
	accs := make(map[string]*carrierAcc)
	for i, c := range carriers {
		a, ok := accs[c]
		if !ok {
			a = &carrierAcc{}
			accs[c] = a
		}
		a.flights++
		a.dep.add(dep[i])
		a.arr.add(arr[i])
	}

	out := make([]CarrierMean, 0, len(accs))
	for c, a := range accs {
		out = append(out, CarrierMean{
			Carrier:      c,
			Flights:      a.flights,
			MeanDepDelay: a.dep.mean(),
			MeanArrDelay: a.arr.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Carrier < out[j].Carrier })
	return out
}

// MonthDayMeans reduces DEP_DELAY onto the month/day grid. The MONTH and
// DAY_OF_MONTH columns must exist, so cleaning has to run first.
func MonthDayMeans(df dataframe.DataFrame) (*MonthDayGrid, error) {
	months := df.Col(dataset.ColMonth)
	days := df.Col(dataset.ColDayOfMonth)
	if months.Err != nil || days.Err != nil {
		return nil, fmt.Errorf("month/day means: table not cleaned: missing derived date columns")
	}
	mVals := months.Float()
	dVals := days.Float()
	dep := df.Col(dataset.ColDepDelay).Float()

	var acc [GridMonths][GridDays]meanAcc
	grid := &MonthDayGrid{}
	for i := range mVals {
		m, d := int(mVals[i]), int(dVals[i])
		if m < 1 || m > GridMonths || d < 1 || d > GridDays {
			return nil, fmt.Errorf("month/day means: row %d has date cell (%d, %d)", i, m, d)
		}
		acc[m-1][d-1].add(dep[i])
	}
	for m := 0; m < GridMonths; m++ {
		for d := 0; d < GridDays; d++ {
			grid.Cells[m][d] = acc[m][d].mean()
			grid.Counts[m][d] = acc[m][d].count
		}
	}
	return grid, nil
}

// CorrelationColumns are the numeric fields entering the correlation matrix.
var CorrelationColumns = []string{
	dataset.ColDepDelay,
	dataset.ColArrDelay,
	dataset.ColAirTime,
	dataset.ColDistance,
	dataset.ColTaxiOut,
	dataset.ColTaxiIn,
	dataset.ColCarrierDelay,
	dataset.ColWeatherDelay,
	dataset.ColNASDelay,
	dataset.ColSecurityDelay,
	dataset.ColLateAircraftDelay,
}

// Correlation computes the Pearson correlation matrix over cols using
// complete-case rows only.
func Correlation(df dataframe.DataFrame, cols []string) (*mat.SymDense, error) {
	n := df.Nrow()
	d := len(cols)
	colVals := make([][]float64, d)
	for j, c := range cols {
		s := df.Col(c)
		if s.Err != nil {
			return nil, fmt.Errorf("correlation: column %s: %w", c, s.Err)
		}
		colVals[j] = s.Float()
	}

	var rows []float64
	kept := 0
rowLoop:
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if math.IsNaN(colVals[j][i]) {
				continue rowLoop
			}
		}
		for j := 0; j < d; j++ {
			rows = append(rows, colVals[j][i])
		}
		kept++
	}
	if kept < 2 {
		return nil, fmt.Errorf("correlation: only %d complete rows", kept)
	}

	m := mat.NewDense(kept, d, rows)
	corr := mat.NewSymDense(d, nil)
	stat.CorrelationMatrix(corr, m, nil)
	return corr, nil
}
