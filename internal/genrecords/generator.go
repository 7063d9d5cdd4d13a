package genrecords

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
)

// randomFloatDivisor controls the resolution of generated floats.
const randomFloatDivisor = 1000000

// Customer profiles steer generated rows toward distinct personas so the
// resulting dashboard shows a spread rather than one dominant bucket.
const (
	profileLoyalist = iota
	profileStressed
	profileExplorer
	profileModerate
	profileCount
)

// Row is one generated CSV row. Empty strings become missing cells.
type Row struct {
	ID              string
	Campaign        string
	Previous        string
	Duration        string
	Tenure          string
	RepeatPurchases string
	Housing         string
	Loan            string
	Balance         string
}

// Header returns the CSV column layout rows are written in.
func Header() []string {
	return []string{"id", "campaign", "previous", "duration", "tenure", "repeat_purchases", "housing", "loan", "balance"}
}

// Fields returns the row's cells in Header order.
func (r Row) Fields() []string {
	return []string{r.ID, r.Campaign, r.Previous, r.Duration, r.Tenure, r.RepeatPurchases, r.Housing, r.Loan, r.Balance}
}

// getRandomFloat returns a random float64 in [0,1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// Generate produces cfg.NumRecords rows with unique IDs across the four
// customer profiles.
func Generate(ctx context.Context, cfg *Config) []Row {
	logger.Get().Info(ctx, "generating customer records", logger.Int("numRecords", cfg.NumRecords))

	rows := make([]Row, cfg.NumRecords)
	for i := range rows {
		profile := i % profileCount
		rows[i] = generateRow(profile, cfg.MissingRate)
	}
	return rows
}

func generateRow(profile int, missingRate float64) Row {
	row := Row{ID: uuid.New().String()}

	switch profile {
	case profileLoyalist:
		row.Campaign = number(12 + getRandomFloat()*8)
		row.Previous = number(6 + getRandomFloat()*4)
		row.Duration = number(2000 + getRandomFloat()*1600)
		row.Housing = "no"
		row.Loan = "no"
	case profileStressed:
		row.Campaign = number(getRandomFloat() * 4)
		row.Previous = number(getRandomFloat() * 2)
		row.Duration = number(getRandomFloat() * 600)
		row.Housing = "yes"
		row.Loan = "yes"
	case profileExplorer:
		row.Campaign = number(getRandomFloat() * 6)
		row.Previous = number(getRandomFloat() * 3)
		row.Duration = number(getRandomFloat() * 900)
		row.Housing = "no"
		row.Loan = "no"
	case profileModerate:
		row.Campaign = number(12 + getRandomFloat()*8)
		row.Previous = number(6 + getRandomFloat()*4)
		row.Duration = number(2000 + getRandomFloat()*1600)
		row.Housing = "yes"
		row.Loan = "yes"
	}

	row.Tenure = number(getRandomFloat() * 120)
	row.RepeatPurchases = number(getRandomFloat() * 50)
	row.Balance = number(-2000 + getRandomFloat()*22000)

	// Blank out cells at the configured rate to exercise the neutral
	// default behavior downstream.
	if missingRate > 0 {
		blank := func(s *string) {
			if getRandomFloat() < missingRate {
				*s = ""
			}
		}
		blank(&row.Tenure)
		blank(&row.RepeatPurchases)
		blank(&row.Balance)
		blank(&row.Previous)
	}

	return row
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
