package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freelens/freelens/internal/common"
	"github.com/freelens/freelens/internal/config"
	"github.com/freelens/freelens/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Persist the cleaned records and stats snapshot to SQLite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			records, bundle, err := loadDataset(true)
			if err != nil {
				return err
			}

			cfg := config.ExportFromViper()
			store, err := storage.NewSnapshotStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open snapshot store: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return err
			}
			if err := store.SaveSnapshot(ctx, records, bundle); err != nil {
				return fmt.Errorf("failed to save snapshot: %w", err)
			}

			common.LogInfo("snapshot exported", common.Fields{
				"db":      cfg.DBPath,
				"records": len(records),
			})
			return nil
		},
	}
	cmd.Flags().String("db", "freelens.db", "path to the snapshot database")
	_ = viper.BindPFlag("export.db_path", cmd.Flags().Lookup("db"))
	return cmd
}
