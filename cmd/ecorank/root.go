package main

import (
	"ecorank/internal/version"

	"github.com/spf13/cobra"
)

var (
	// projectFlag is the CLI --project flag value
	projectFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ecorank",
	Short: "ecorank - sustainability scoring for building materials",
	Long: `ecorank scores building-material catalogs for sustainability. Each product
earns three sub-scores (hazardous substances, circularity & lifetime,
certifications) that combine into a weighted total, and the catalog can be
ranked, filtered, and served over HTTP.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("ecorank version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "C", "",
		"Project directory containing .ecorank/ (default: current directory)")
}
