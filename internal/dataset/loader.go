// Package dataset loads the freelancer earnings CSV and cleans it into
// model.Records. Cleaning is a two-pass filter: rows with missing fields are
// dropped first, then rows whose numeric columns fail to parse. The first
// pass is deliberately configurable because it discards a row for an empty
// value in any required column, not just the numeric ones.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/freelens/freelens/internal/common"
	"github.com/freelens/freelens/internal/model"
)

// CleaningPolicy controls which rows survive loading.
type CleaningPolicy struct {
	// DropIncompleteRows drops any row with an empty value in any column,
	// even columns no statistic reads. Numeric coercion failures always drop
	// the row regardless of this setting.
	DropIncompleteRows bool

	// ShowProgress renders a progress bar while cleaning rows.
	ShowProgress bool
}

// DefaultPolicy mirrors the historical behavior: incomplete rows are dropped
// wholesale.
func DefaultPolicy() CleaningPolicy {
	return CleaningPolicy{DropIncompleteRows: true}
}

// Load reads the dataset at path and returns the cleaned records. Any
// structural failure (unreadable file, malformed CSV, missing required
// columns) is fatal and returns a nil slice.
func Load(path string, policy CleaningPolicy) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset is empty", common.ErrMissingColumns)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	return clean(rows[1:], len(rows[0]), columns, policy), nil
}

// mapColumns resolves each required column name to its index in the header.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	columns := make(map[string]int, len(model.RequiredColumns()))
	var missing []string
	for _, name := range model.RequiredColumns() {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = i
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return columns, nil
}

func clean(rows [][]string, width int, columns map[string]int, policy CleaningPolicy) []model.Record {
	var bar *progressbar.ProgressBar
	if policy.ShowProgress {
		bar = progressbar.Default(int64(len(rows)), "cleaning rows")
	}

	records := make([]model.Record, 0, len(rows))
	var droppedIncomplete, droppedNonNumeric int

	for _, row := range rows {
		if bar != nil {
			_ = bar.Add(1)
		}

		if policy.DropIncompleteRows && hasMissingField(row, width) {
			droppedIncomplete++
			continue
		}

		rec, ok := coerce(row, columns)
		if !ok {
			droppedNonNumeric++
			continue
		}
		records = append(records, rec)
	}

	slog.Info("dataset cleaned",
		"rows", len(rows),
		"kept", len(records),
		"dropped_incomplete", droppedIncomplete,
		"dropped_non_numeric", droppedNonNumeric)

	return records
}

// hasMissingField reports whether any cell in the row is empty. The check
// deliberately covers every column, not just the required ones: a row missing
// an unrelated field is discarded wholesale.
func hasMissingField(row []string, width int) bool {
	if len(row) < width {
		return true
	}
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			return true
		}
	}
	return false
}

// coerce builds a Record from a row, reporting failure if any numeric column
// does not parse. Missing values count as unparseable, so rows that slipped
// past the first pass are still eliminated here.
func coerce(row []string, columns map[string]int) (model.Record, bool) {
	cell := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	numbers := make(map[string]float64, len(model.NumericColumns()))
	for _, name := range model.NumericColumns() {
		v, err := strconv.ParseFloat(cell(name), 64)
		if err != nil {
			return model.Record{}, false
		}
		numbers[name] = v
	}

	return model.Record{
		PaymentMethod:   cell(model.ColPaymentMethod),
		ClientRegion:    cell(model.ColClientRegion),
		ExperienceLevel: cell(model.ColExperienceLevel),
		JobCategory:     cell(model.ColJobCategory),
		Platform:        cell(model.ColPlatform),
		EarningsUSD:     numbers[model.ColEarningsUSD],
		HourlyRate:      numbers[model.ColHourlyRate],
		JobSuccessRate:  numbers[model.ColJobSuccessRate],
		ClientRating:    numbers[model.ColClientRating],
		JobDurationDays: numbers[model.ColJobDurationDays],
		RehireRate:      numbers[model.ColRehireRate],
		MarketingSpend:  numbers[model.ColMarketingSpend],
		JobsCompleted:   numbers[model.ColJobsCompleted],
	}, true
}
