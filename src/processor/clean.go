// Package processor cleans the sampled flight table and reduces it to the
// aggregate views the charts and the report are built from.
package processor

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"FlightDelayAnalysis/src/dataset"
)

const flightDateLayout = "2006-01-02"

// ParseError reports a malformed flight date. Dates are parsed strictly;
// guessing the intended value would silently corrupt the month/day grid.
type ParseError struct {
	Column string
	Row    int
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s row %d: malformed value %q", e.Column, e.Row, e.Value)
}

// FillDelayCauses replaces missing values in the five delay-cause columns
// with zero. A flight without an attributed cause contributed no delay.
func FillDelayCauses(df dataframe.DataFrame) dataframe.DataFrame {
	for _, col := range dataset.DelayCauseColumns {
		vals := df.Col(col).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
			}
		}
		df = df.Mutate(series.New(vals, series.Float, col))
	}
	return df
}

// ParseFlightDates validates every FL_DATE value and derives the MONTH and
// DAY_OF_MONTH columns. The calendar year is dropped on purpose: the
// month/day aggregation folds all years onto one grid.
func ParseFlightDates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	records := df.Col(dataset.ColFlightDate).Records()
	months := make([]int, len(records))
	days := make([]int, len(records))

	for i, r := range records {
		t, err := time.Parse(flightDateLayout, r)
		if err != nil {
			return dataframe.DataFrame{}, &ParseError{Column: dataset.ColFlightDate, Row: i, Value: r}
		}
		months[i] = int(t.Month())
		days[i] = t.Day()
	}

	df = df.Mutate(series.New(months, series.Int, dataset.ColMonth))
	df = df.Mutate(series.New(days, series.Int, dataset.ColDayOfMonth))
	return df, nil
}

// DeriveHours adds DEP_HOUR and ARR_HOUR from the scheduled HHMM integers.
// The division is not range-checked: a scheduled time of 2400 yields hour
// 24 and passes through. The returned count of out-of-range hours lets the
// caller surface the gap without changing any result.
func DeriveHours(df dataframe.DataFrame) (dataframe.DataFrame, int) {
	outOfRange := 0
	for col, hourCol := range map[string]string{
		dataset.ColScheduledDepTime: dataset.ColDepHour,
		dataset.ColScheduledArrTime: dataset.ColArrHour,
	} {
		vals := df.Col(col).Float()
		hours := make([]interface{}, len(vals))
		for i, v := range vals {
			if math.IsNaN(v) {
				hours[i] = nil
				continue
			}
			h := int(v) / 100
			if h < 0 || h > 23 {
				outOfRange++
			}
			hours[i] = h
		}
		df = df.Mutate(series.New(hours, series.Int, hourCol))
	}
	return df, outOfRange
}
