package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/genrecords"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
)

func main() {
	numRecords := flag.Int("records", 10000, "number of customer rows to generate")
	output := flag.String("output", "", "output CSV path (default: customers_TIMESTAMP.csv)")
	missingRate := flag.Float64("missing", 0.05, "probability a generated cell is blank")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		logger.SetLevel(slog.LevelDebug)
	}

	out := *output
	if out == "" {
		out = "customers_" + time.Now().Format("20060102_150405") + ".csv"
	}

	cfg := &genrecords.Config{
		NumRecords:  *numRecords,
		OutputFile:  out,
		MissingRate: *missingRate,
		Verbose:     *verbose,
	}

	ctx := context.Background()
	rows := genrecords.Generate(ctx, cfg)
	if err := genrecords.WriteCSV(ctx, cfg, rows); err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
}
