package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/series"
)

// Column names of the flight-records CSV.
const (
	ColFlightDate        = "FL_DATE"
	ColCarrier           = "OP_CARRIER"
	ColScheduledDepTime  = "CRS_DEP_TIME"
	ColScheduledArrTime  = "CRS_ARR_TIME"
	ColDepDelay          = "DEP_DELAY"
	ColArrDelay          = "ARR_DELAY"
	ColAirTime           = "AIR_TIME"
	ColDistance          = "DISTANCE"
	ColTaxiOut           = "TAXI_OUT"
	ColTaxiIn            = "TAXI_IN"
	ColCarrierDelay      = "CARRIER_DELAY"
	ColWeatherDelay      = "WEATHER_DELAY"
	ColNASDelay          = "NAS_DELAY"
	ColSecurityDelay     = "SECURITY_DELAY"
	ColLateAircraftDelay = "LATE_AIRCRAFT_DELAY"
)

// Columns derived during cleaning.
const (
	ColMonth      = "MONTH"
	ColDayOfMonth = "DAY_OF_MONTH"
	ColDepHour    = "DEP_HOUR"
	ColArrHour    = "ARR_HOUR"
)

// DelayCauseColumns carry attributed delay minutes; a missing value means
// zero contribution, not unknown.
var DelayCauseColumns = []string{
	ColCarrierDelay,
	ColWeatherDelay,
	ColNASDelay,
	ColSecurityDelay,
	ColLateAircraftDelay,
}

// RequiredColumns must all be present in the input header.
var RequiredColumns = []string{
	ColFlightDate,
	ColCarrier,
	ColScheduledDepTime,
	ColScheduledArrTime,
	ColDepDelay,
	ColArrDelay,
	ColAirTime,
	ColDistance,
	ColTaxiOut,
	ColTaxiIn,
	ColCarrierDelay,
	ColWeatherDelay,
	ColNASDelay,
	ColSecurityDelay,
	ColLateAircraftDelay,
}

// columnTypes pins the parsed type of each known column; anything else in
// the file stays a string and is ignored downstream.
var columnTypes = map[string]series.Type{
	ColFlightDate:        series.String,
	ColCarrier:           series.String,
	ColScheduledDepTime:  series.Float,
	ColScheduledArrTime:  series.Float,
	ColDepDelay:          series.Float,
	ColArrDelay:          series.Float,
	ColAirTime:           series.Float,
	ColDistance:          series.Float,
	ColTaxiOut:           series.Float,
	ColTaxiIn:            series.Float,
	ColCarrierDelay:      series.Float,
	ColWeatherDelay:      series.Float,
	ColNASDelay:          series.Float,
	ColSecurityDelay:     series.Float,
	ColLateAircraftDelay: series.Float,
}

// SchemaError reports required columns absent from the input header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("flight data schema: missing columns: %s", strings.Join(e.Missing, ", "))
}
