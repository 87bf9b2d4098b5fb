package main

import (
	"github.com/freelens/freelens/internal/common"
	"github.com/freelens/freelens/internal/config"
	"github.com/freelens/freelens/internal/dataset"
	"github.com/freelens/freelens/internal/model"
	"github.com/freelens/freelens/internal/stats"
)

// loadDataset loads and cleans the configured dataset and builds the stats
// snapshot. Any failure here is fatal for the invoking command.
func loadDataset(showProgress bool) ([]model.Record, model.StatsBundle, error) {
	cfg := config.DataFromViper()

	records, err := dataset.Load(cfg.Path, dataset.CleaningPolicy{
		DropIncompleteRows: cfg.DropIncompleteRows,
		ShowProgress:       showProgress,
	})
	if err != nil {
		return nil, model.StatsBundle{}, common.NewUserError("Failed to load data", err)
	}

	return records, stats.Build(records), nil
}
