package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freelens/freelens/internal/cli"
	"github.com/freelens/freelens/internal/insight"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the aggregate statistics without contacting the LLM",
		RunE: func(_ *cobra.Command, _ []string) error {
			records, bundle, err := loadDataset(true)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderBox(
				cli.ChartIcon+" Freelancer Earnings Statistics",
				insight.BuildContext(bundle, records),
			))
			return nil
		},
	}
	return cmd
}
