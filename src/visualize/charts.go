// Package visualize renders the aggregate tables as PNG files. It is a
// sink: nothing it produces feeds back into the pipeline.
package visualize

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"FlightDelayAnalysis/src/processor"
)

// Histogram renders the distribution of values; NaN entries are dropped.
func Histogram(values []float64, title, xLabel, path string) error {
	var clean plotter.Values
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return fmt.Errorf("histogram %s: no values", title)
	}

	h, err := plotter.NewHist(clean, 40)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", title, err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "flights"
	p.Add(h)

	return save(p, path)
}

// BarChart renders one bar per label, ordered by descending magnitude.
// The ordering is cosmetic; the values are untouched.
func BarChart(labels []string, values []float64, title, yLabel, path string) error {
	if len(labels) != len(values) {
		return fmt.Errorf("bar chart %s: %d labels for %d values", title, len(labels), len(values))
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return math.Abs(values[idx[a]]) > math.Abs(values[idx[b]])
	})

	ordered := make(plotter.Values, len(idx))
	names := make([]string, len(idx))
	for rank, i := range idx {
		ordered[rank] = values[i]
		names[rank] = labels[i]
	}

	bars, err := plotter.NewBarChart(ordered, vg.Points(14))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", title, err)
	}
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Add(bars)
	p.NominalX(names...)

	return save(p, path)
}

// monthDayXYZ adapts the aggregation grid to the heatmap interface.
// Columns are days, rows are months, both 1-based on the axes.
type monthDayXYZ struct {
	g *processor.MonthDayGrid
}

func (m monthDayXYZ) Dims() (c, r int)   { return processor.GridDays, processor.GridMonths }
func (m monthDayXYZ) X(c int) float64    { return float64(c + 1) }
func (m monthDayXYZ) Y(r int) float64    { return float64(r + 1) }
func (m monthDayXYZ) Z(c, r int) float64 { return m.g.Cells[r][c] }

// MonthDayHeatMap renders the mean departure delay per calendar day.
// Cells without observations stay blank.
func MonthDayHeatMap(grid *processor.MonthDayGrid, title, path string) error {
	xyz := monthDayXYZ{g: grid}

	cm := moreland.SmoothBlueRed()
	lo, hi := gridRange(xyz)
	cm.SetMin(lo)
	cm.SetMax(hi)

	h := plotter.NewHeatMap(xyz, cm.Palette(255))
	h.Min, h.Max = lo, hi

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "day of month"
	p.Y.Label.Text = "month"
	p.Add(h)

	return save(p, path)
}

// corrXYZ adapts a correlation matrix to the heatmap interface.
type corrXYZ struct {
	m *mat.SymDense
}

func (c corrXYZ) Dims() (cols, rows int) { d, _ := c.m.Dims(); return d, d }
func (c corrXYZ) X(col int) float64      { return float64(col) }
func (c corrXYZ) Y(row int) float64      { return float64(row) }
func (c corrXYZ) Z(col, row int) float64 { return c.m.At(row, col) }

// CorrelationMatrix renders the correlation matrix with its column names
// as ticks on both axes.
func CorrelationMatrix(corr *mat.SymDense, labels []string, title, path string) error {
	d, _ := corr.Dims()
	if len(labels) != d {
		return fmt.Errorf("correlation matrix: %d labels for order %d", len(labels), d)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	h := plotter.NewHeatMap(corrXYZ{m: corr}, cm.Palette(255))
	h.Min, h.Max = -1, 1

	ticks := make([]plot.Tick, d)
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.Add(h)

	return save(p, path)
}

func gridRange(g plotter.GridXYZ) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	cols, rows := g.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo >= hi {
		lo, hi = lo-1, lo+1
	}
	return lo, hi
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
