// Package report exports the aggregate tables and the run metrics as an
// xlsx workbook.
package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"FlightDelayAnalysis/src/model"
	"FlightDelayAnalysis/src/processor"
)

// Sheet names inside the workbook.
const (
	SheetCarrierMeans  = "CarrierMeans"
	SheetMonthDayMeans = "MonthDayMeans"
	SheetMetrics       = "Metrics"
)

// RunInfo records the parameters that produced the metrics, so the
// workbook is readable on its own.
type RunInfo struct {
	InputPath      string
	RowsLoaded     int
	RowsSampled    int
	SampleFraction float64
	Seed           int64
	ThresholdMin   float64
}

// Write saves the workbook to path with one sheet per aggregate table and
// one for the classification metrics.
func Write(path string, carriers []processor.CarrierMean, grid *processor.MonthDayGrid, m model.Metrics, info RunInfo) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCarrierMeans); err != nil {
		return fmt.Errorf("report workbook: %w", err)
	}
	if err := writeCarrierSheet(f, carriers); err != nil {
		return err
	}
	if err := writeGridSheet(f, grid); err != nil {
		return err
	}
	if err := writeMetricsSheet(f, m, info); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report workbook: %w", err)
	}
	return nil
}

func writeCarrierSheet(f *excelize.File, carriers []processor.CarrierMean) error {
	headers := []string{"Carrier", "Flights", "MeanDepDelay", "MeanArrDelay"}
	for i, h := range headers {
		if err := setCell(f, SheetCarrierMeans, i+1, 1, h); err != nil {
			return err
		}
	}
	for row, c := range carriers {
		values := []interface{}{c.Carrier, c.Flights, cellValue(c.MeanDepDelay), cellValue(c.MeanArrDelay)}
		for col, v := range values {
			if err := setCell(f, SheetCarrierMeans, col+1, row+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeGridSheet(f *excelize.File, grid *processor.MonthDayGrid) error {
	if _, err := f.NewSheet(SheetMonthDayMeans); err != nil {
		return fmt.Errorf("report workbook: %w", err)
	}
	if err := setCell(f, SheetMonthDayMeans, 1, 1, "Month\\Day"); err != nil {
		return err
	}
	for d := 1; d <= processor.GridDays; d++ {
		if err := setCell(f, SheetMonthDayMeans, d+1, 1, d); err != nil {
			return err
		}
	}
	for mo := 1; mo <= processor.GridMonths; mo++ {
		if err := setCell(f, SheetMonthDayMeans, 1, mo+1, mo); err != nil {
			return err
		}
		for d := 1; d <= processor.GridDays; d++ {
			if err := setCell(f, SheetMonthDayMeans, d+1, mo+1, cellValue(grid.Cell(mo, d))); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMetricsSheet(f *excelize.File, m model.Metrics, info RunInfo) error {
	if _, err := f.NewSheet(SheetMetrics); err != nil {
		return fmt.Errorf("report workbook: %w", err)
	}
	rows := [][2]interface{}{
		{"Accuracy", m.Accuracy},
		{"Precision", m.Precision},
		{"Recall", m.Recall},
		{"F1-score", m.F1},
		{"AUC", cellValue(m.AUC)},
		{"TruePositives", m.TP},
		{"FalsePositives", m.FP},
		{"TrueNegatives", m.TN},
		{"FalseNegatives", m.FN},
		{"Input", info.InputPath},
		{"RowsLoaded", info.RowsLoaded},
		{"RowsSampled", info.RowsSampled},
		{"SampleFraction", info.SampleFraction},
		{"Seed", info.Seed},
		{"DelayThresholdMinutes", info.ThresholdMin},
	}
	for i, r := range rows {
		if err := setCell(f, SheetMetrics, 1, i+1, r[0]); err != nil {
			return err
		}
		if err := setCell(f, SheetMetrics, 2, i+1, r[1]); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("report workbook: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("report workbook: set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// cellValue keeps NaN means out of the workbook; excel has no NaN cell.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}
