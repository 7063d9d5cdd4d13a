// Package dataset maps raw tabular customer data onto domain records. It is
// the loading boundary: file formats and column naming stop here, the
// pipeline only ever sees records.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// Canonical signal names produced by the loader.
const (
	SignalCampaign        = "campaign"
	SignalPrevious        = "previous"
	SignalDuration        = "duration"
	SignalTenure          = "tenure"
	SignalRepeatPurchases = "repeat_purchases"
	SignalHousingLoan     = "housing_loan"
	SignalPersonalLoan    = "personal_loan"
	SignalBalance         = "balance"
)

// idColumn is treated as the record identifier, not a signal.
const idColumn = "id"

// columnSignals renames source dataset columns to canonical signal names.
// Columns not listed here keep their own (lowercased) name.
var columnSignals = map[string]string{
	"housing": SignalHousingLoan,
	"loan":    SignalPersonalLoan,
}

// ReadCSV parses a header-driven CSV stream into raw records.
//
// Cell handling, per column:
//   - the id column becomes the record ID; absent column means generated UUIDs
//   - blank cells are missing values (nil signal)
//   - yes/no and true/false map to 1/0
//   - anything else parses as a float; unparseable cells become NaN so the
//     pipeline's validation can skip the row through its side channel instead
//     of the loader aborting the whole file
func ReadCSV(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	idIndex := -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == idColumn {
			idIndex = i
			continue
		}
		if canonical, ok := columnSignals[name]; ok {
			name = canonical
		}
		columns[i] = name
	}

	var records []model.RawRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rowToRecord(columns, idIndex, row))
	}
	return records, nil
}

// LoadFile reads a CSV dataset from disk.
func LoadFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func rowToRecord(columns []string, idIndex int, row []string) model.RawRecord {
	record := model.RawRecord{
		Signals: make(map[string]*float64, len(columns)),
	}
	for i, cell := range row {
		if i == idIndex {
			record.ID = strings.TrimSpace(cell)
			continue
		}
		if i >= len(columns) || columns[i] == "" {
			continue
		}
		record.Signals[columns[i]] = parseCell(cell)
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return record
}

// parseCell converts one CSV cell into a signal value. nil means missing.
func parseCell(cell string) *float64 {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return nil
	}
	switch cell {
	case "yes", "true":
		return ptr(1)
	case "no", "false":
		return ptr(0)
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return ptr(math.NaN())
	}
	return ptr(v)
}

func ptr(v float64) *float64 {
	return &v
}
