package main

import (
	"os"

	"FlightDelayAnalysis/src/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
