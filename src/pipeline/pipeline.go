// Package pipeline runs the whole analysis once, start to finish: load,
// sample, clean, aggregate, visualize, model, report.
package pipeline

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"FlightDelayAnalysis/src/config"
	"FlightDelayAnalysis/src/dataset"
	"FlightDelayAnalysis/src/model"
	"FlightDelayAnalysis/src/processor"
	"FlightDelayAnalysis/src/report"
	"FlightDelayAnalysis/src/visualize"
)

// Chart file names inside the output directory.
const (
	ChartArrDelayHist    = "arr_delay_hist.png"
	ChartCarrierDepDelay = "carrier_dep_delay.png"
	ChartCarrierArrDelay = "carrier_arr_delay.png"
	ChartMonthDayHeatMap = "monthday_dep_delay.png"
	ChartCorrelation     = "correlation_matrix.png"
)

// Result summarizes a completed run.
type Result struct {
	RowsLoaded  int
	RowsSampled int
	Metrics     model.Metrics
	Charts      []string
	ReportPath  string
}

// Run executes every stage in order and returns once the metrics line has
// been printed and all artifacts are on disk. Any stage error aborts the
// run, wrapped with the stage name.
func Run(cfg *config.Config, log *zap.Logger) (*Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, stageErr("setup", err)
	}

	// Two generators from the same seed keep sampling and partitioning
	// independently reproducible.
	sampleRNG := rand.New(rand.NewSource(cfg.Seed))
	splitRNG := rand.New(rand.NewSource(cfg.Seed))

	start := time.Now()
	df, err := dataset.ReadFlights(cfg.InputPath, cfg.Encoding)
	if err != nil {
		return nil, stageErr("load", err)
	}
	rowsLoaded := df.Nrow()
	log.Info("flight data loaded",
		zap.String("input", cfg.InputPath),
		zap.Int("rows", rowsLoaded),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	df, err = dataset.Sample(df, cfg.SampleFraction, sampleRNG)
	if err != nil {
		return nil, stageErr("sample", err)
	}
	log.Info("subsample drawn",
		zap.Int("rows", df.Nrow()),
		zap.Float64("fraction", cfg.SampleFraction),
		zap.Int64("seed", cfg.Seed),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	df = processor.FillDelayCauses(df)
	df, err = processor.ParseFlightDates(df)
	if err != nil {
		return nil, stageErr("clean", err)
	}
	var badHours int
	df, badHours = processor.DeriveHours(df)
	if badHours > 0 {
		log.Debug("scheduled hours outside 0-23 passed through", zap.Int("count", badHours))
	}
	log.Info("table cleaned", zap.Duration("took", time.Since(start)))

	start = time.Now()
	carrierMeans := processor.CarrierMeans(df)
	grid, err := processor.MonthDayMeans(df)
	if err != nil {
		return nil, stageErr("aggregate", err)
	}
	corr, err := processor.Correlation(df, processor.CorrelationColumns)
	if err != nil {
		return nil, stageErr("aggregate", err)
	}
	log.Info("aggregates computed",
		zap.Int("carriers", len(carrierMeans)),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	charts, err := renderCharts(cfg.OutputDir, df.Col(dataset.ColArrDelay).Float(), carrierMeans, grid, corr)
	if err != nil {
		return nil, stageErr("visualize", err)
	}
	log.Info("charts rendered",
		zap.Strings("files", charts),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	design := model.BuildDesign(df, cfg.DelayThresholdMinutes)
	if design.Dropped > 0 {
		log.Info("rows without arrival delay excluded from modeling", zap.Int("rows", design.Dropped))
	}
	split, err := model.StratifiedSplit(design, cfg.TrainFraction, splitRNG)
	if err != nil {
		return nil, stageErr("model", err)
	}
	reg, err := model.Fit(split.XTrain, split.YTrain)
	if err != nil {
		return nil, stageErr("model", err)
	}
	metrics := model.Evaluate(reg.Scores(split.XTest), split.YTest, 0.5)
	log.Info("model evaluated",
		zap.Int("train_rows", len(split.YTrain)),
		zap.Int("test_rows", len(split.YTest)),
		zap.Float64("accuracy", metrics.Accuracy),
		zap.Float64("precision", metrics.Precision),
		zap.Float64("recall", metrics.Recall),
		zap.Float64("f1", metrics.F1),
		zap.Float64("auc", metrics.AUC),
		zap.Duration("took", time.Since(start)))

	fmt.Println(metrics.Line())

	result := &Result{
		RowsLoaded:  rowsLoaded,
		RowsSampled: df.Nrow(),
		Metrics:     metrics,
		Charts:      charts,
	}

	if cfg.ReportFile != "" {
		start = time.Now()
		path := filepath.Join(cfg.OutputDir, cfg.ReportFile)
		info := report.RunInfo{
			InputPath:      cfg.InputPath,
			RowsLoaded:     rowsLoaded,
			RowsSampled:    df.Nrow(),
			SampleFraction: cfg.SampleFraction,
			Seed:           cfg.Seed,
			ThresholdMin:   cfg.DelayThresholdMinutes,
		}
		if err := report.Write(path, carrierMeans, grid, metrics, info); err != nil {
			return nil, stageErr("report", err)
		}
		result.ReportPath = path
		log.Info("report written", zap.String("file", path), zap.Duration("took", time.Since(start)))
	}

	return result, nil
}

func renderCharts(dir string, arrDelays []float64, carriers []processor.CarrierMean, grid *processor.MonthDayGrid, corr *mat.SymDense) ([]string, error) {
	labels := make([]string, len(carriers))
	depMeans := make([]float64, len(carriers))
	arrMeans := make([]float64, len(carriers))
	for i, c := range carriers {
		labels[i] = c.Carrier
		depMeans[i] = c.MeanDepDelay
		arrMeans[i] = c.MeanArrDelay
	}

	charts := []struct {
		file   string
		render func(path string) error
	}{
		{ChartArrDelayHist, func(p string) error {
			return visualize.Histogram(arrDelays, "Arrival delay distribution", "arrival delay (min)", p)
		}},
		{ChartCarrierDepDelay, func(p string) error {
			return visualize.BarChart(labels, depMeans, "Mean departure delay by carrier", "delay (min)", p)
		}},
		{ChartCarrierArrDelay, func(p string) error {
			return visualize.BarChart(labels, arrMeans, "Mean arrival delay by carrier", "delay (min)", p)
		}},
		{ChartMonthDayHeatMap, func(p string) error {
			return visualize.MonthDayHeatMap(grid, "Mean departure delay by calendar day", p)
		}},
		{ChartCorrelation, func(p string) error {
			return visualize.CorrelationMatrix(corr, processor.CorrelationColumns, "Correlation matrix", p)
		}},
	}

	var files []string
	for _, c := range charts {
		path := filepath.Join(dir, c.file)
		if err := c.render(path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func stageErr(stage string, err error) error {
	return fmt.Errorf("stage %s: %w", stage, err)
}
