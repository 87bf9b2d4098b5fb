package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/freelens/freelens/internal/cli"
	"github.com/freelens/freelens/internal/config"
	"github.com/freelens/freelens/internal/insight"
	"github.com/freelens/freelens/internal/llm"
)

// exitToken ends the interactive session (case-insensitive).
const exitToken = "exit"

var exampleQuestions = []string{
	"How much more do freelancers who accept crypto payments earn?",
	"How do freelancer earnings break down by client region?",
	"What share of expert freelancers completed fewer than 100 projects?",
	"Compare earnings across experience levels",
	"Which platform has the best job success rate?",
	"Is there a correlation between client rating and earnings?",
	"Does the payment method affect average earnings?",
	"Top 5 most profitable job categories",
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer questions about the dataset interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, bundle, err := loadDataset(true)
			if err != nil {
				return err
			}

			client, err := llm.NewClient(config.LLMFromViper())
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}

			answerer := insight.NewAnswerer(client, bundle, records)
			return runLoop(cmd.Context(), answerer, bundle.RecordCount)
		},
	}
	return cmd
}

// runLoop is the blocking read-answer-print loop. One query is in flight at
// a time; per-query failures surface as printed error strings and never end
// the session.
func runLoop(ctx context.Context, answerer *insight.Answerer, recordCount int) error {
	printBanner(recordCount)

	reader := cli.NewLineReader(os.Stdin)
	for {
		fmt.Print(cli.FormatPrompt("Your question"))

		line, err := reader.ReadLine(ctx)
		switch {
		case errors.Is(err, cli.ErrInputCancelled), errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if line == "" {
			continue
		}
		if strings.EqualFold(line, exitToken) {
			return nil
		}

		answer := answerer.Answer(ctx, line)
		fmt.Printf("\n%s %s\n\n", cli.InfoStyle.Render(cli.RobotIcon+" Answer:"), answer)
	}
}

func printBanner(recordCount int) {
	fmt.Println(cli.FormatTitle("Freelancer earnings analysis"))
	fmt.Printf("Loaded data with %d records\n\n", recordCount)

	fmt.Println(cli.SubtleStyle.Render("Example questions you can ask:"))
	for _, q := range exampleQuestions {
		fmt.Println(cli.SubtleStyle.Render("- " + q))
	}
	fmt.Println(cli.SubtleStyle.Render("Type \"exit\" to quit."))
	fmt.Println()
}
