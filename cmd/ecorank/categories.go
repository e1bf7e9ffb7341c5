package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	categoriesInputs []string
	categoriesFormat string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the distinct product categories",
	Long: `List every category name that appears in the catalog, sorted
alphabetically. Useful for finding valid values for the category filter
on 'ecorank score' consumers and the HTTP API.

Examples:
  ecorank categories
  ecorank categories --input data/materials.json --format json`,
	Args: cobra.NoArgs,
	Run:  runCategories,
}

func init() {
	categoriesCmd.Flags().StringArrayVar(&categoriesInputs, "input", nil, "Product feed to read (repeatable)")
	categoriesCmd.Flags().StringVar(&categoriesFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) {
	logger := newLogger(categoriesFormat)
	baseDir := mustGetProjectRoot()
	cfg := loadProjectConfig(baseDir, logger)

	paths, err := resolveInputPaths(baseDir, cfg, categoriesInputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input feeds: %v\n", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	categories := cat.Categories()
	resp := &CategoriesResponseCLI{
		Count:      len(categories),
		Categories: categories,
	}

	output, err := FormatResponse(resp, OutputFormat(categoriesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// CategoriesResponseCLI lists catalog categories for CLI output
type CategoriesResponseCLI struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}
