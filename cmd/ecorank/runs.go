package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecorank/internal/storage"
)

var (
	runsFormat string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query the run archive",
	Long: `Query archived scoring runs. Every 'ecorank score' invocation is
recorded to .ecorank/ecorank.db unless --no-record is set, capturing the
feeds, weights, and top products of the run.

Examples:
  ecorank runs list
  ecorank runs list --limit 5
  ecorank runs show 2f1c9a54-8e7b-4f40-9c25-6d1f6d3c1a2b`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Run:   runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one archived run",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsFormat, "format", "human", "Output format (json, human)")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", storage.DefaultListLimit, "Maximum number of runs")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, args []string) {
	logger := newLogger(runsFormat)
	baseDir := mustGetProjectRoot()

	repo, db, err := openRunRepository(baseDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	runs, err := repo.List(runsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}

	resp := &RunsResponseCLI{
		Count: len(runs),
		Runs:  runs,
	}

	output, err := FormatResponse(resp, OutputFormat(runsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runRunsShow(cmd *cobra.Command, args []string) {
	logger := newLogger(runsFormat)
	baseDir := mustGetProjectRoot()

	repo, db, err := openRunRepository(baseDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := repo.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &RunResponseCLI{Run: run}

	output, err := FormatResponse(resp, OutputFormat(runsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// RunsResponseCLI lists archived runs for CLI output
type RunsResponseCLI struct {
	Count int            `json:"count"`
	Runs  []*storage.Run `json:"runs"`
}

// RunResponseCLI wraps one archived run for CLI output
type RunResponseCLI struct {
	Run *storage.Run `json:"run"`
}
