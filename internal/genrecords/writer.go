package genrecords

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
)

// WriteCSV writes the generated rows to cfg.OutputFile.
func WriteCSV(ctx context.Context, cfg *Config, rows []Row) error {
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Fields()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	logger.Get().Info(ctx, "dataset written",
		logger.String("path", cfg.OutputFile),
		logger.Int("rows", len(rows)),
	)
	return nil
}
