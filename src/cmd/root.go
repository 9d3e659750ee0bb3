// Package cmd wires the command line to the pipeline.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"FlightDelayAnalysis/src/config"
	"FlightDelayAnalysis/src/logger"
	"FlightDelayAnalysis/src/pipeline"
)

// Execute runs the root command. The returned error has already been
// logged with its failing stage.
func Execute() error {
	return rootCommand().Execute()
}

func rootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "flightdelays",
		Short: "Analyze a year of flight records and fit a delay classifier",
		Long: "flightdelays loads a flight-records CSV, draws a seeded subsample,\n" +
			"renders descriptive charts and fits a linear model classifying\n" +
			"arrival delays over the configured threshold.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			log, err := logger.New(cfg.Debug)
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}
			defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

			if _, err := pipeline.Run(cfg, log); err != nil {
				log.Error("pipeline failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "optional YAML config file")
	cmd.Flags().String("input", "", "path to the flight-records CSV (required unless set via config/env)")
	cmd.Flags().String("output-dir", "output", "directory for charts and the report workbook")
	cmd.Flags().Float64("sample-fraction", 0.001, "fraction of rows to sample, in (0,1]")
	cmd.Flags().Int64("seed", 123, "random seed for sampling and the train/test split")
	cmd.Flags().Float64("delay-threshold", 30, "arrival delay minutes counted as significant")
	cmd.Flags().Float64("train-fraction", 0.8, "fraction of each class used for training")
	cmd.Flags().String("encoding", "utf-8", "input file encoding: utf-8, latin-1 or gbk")
	cmd.Flags().String("report", "delay_report.xlsx", "report workbook name; empty disables it")
	cmd.Flags().Bool("debug", false, "enable debug logging")

	return cmd
}
