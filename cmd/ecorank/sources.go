package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecorank/internal/config"
	"ecorank/internal/sources"
)

var (
	sourcesFormat  string
	sourcesAddTags []string
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage registered product feeds",
	Long: `Manage the feed registry in .ecorank/sources.toml. Registered feeds
are concatenated into one catalog by 'ecorank score' and 'ecorank serve'
when no --input flags are given.

Examples:
  ecorank sources list
  ecorank sources add main data/materials.json
  ecorank sources add vendor-x exports/vendor_x.json.gz --tags vendor,quarterly
  ecorank sources rename vendor-x vendor-x-2026
  ecorank sources remove vendor-x-2026`,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered feeds",
	Run:   runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register a product feed",
	Args:  cobra.ExactArgs(2),
	Run:   runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a registered feed",
	Args:  cobra.ExactArgs(1),
	Run:   runSourcesRemove,
}

var sourcesRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a registered feed",
	Long:  "Rename a registered feed. The feed keeps its UID, so archived runs stay attributable.",
	Args:  cobra.ExactArgs(2),
	Run:   runSourcesRename,
}

func init() {
	sourcesCmd.PersistentFlags().StringVar(&sourcesFormat, "format", "human", "Output format (json, human)")
	sourcesAddCmd.Flags().StringSliceVar(&sourcesAddTags, "tags", nil, "Labels for the feed (comma-separated)")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesRenameCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	registry := mustLoadSources(baseDir)

	resp := &SourcesResponseCLI{
		Count:   len(registry.Sources),
		Sources: make([]SourceInfoCLI, 0, len(registry.Sources)),
	}
	for _, src := range registry.Sources {
		resp.Sources = append(resp.Sources, SourceInfoCLI{
			UID:     src.UID,
			Name:    src.Name,
			Path:    src.Path,
			Tags:    src.Tags,
			AddedAt: src.AddedAt,
		})
	}

	output, err := FormatResponse(resp, OutputFormat(sourcesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runSourcesAdd(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	registry := mustLoadSources(baseDir)

	src, err := registry.Add(args[0], args[1], sourcesAddTags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mustSaveSources(baseDir, registry)

	fmt.Printf("Registered feed '%s'\n", src.Name)
	fmt.Printf("  Path: %s\n", src.Path)
	if len(src.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(src.Tags, ", "))
	}
	fmt.Printf("  UID: %s\n", src.UID)
}

func runSourcesRemove(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	registry := mustLoadSources(baseDir)

	if err := registry.Remove(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mustSaveSources(baseDir, registry)

	fmt.Printf("Removed feed '%s'\n", args[0])
}

func runSourcesRename(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	registry := mustLoadSources(baseDir)

	if err := registry.Rename(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mustSaveSources(baseDir, registry)

	fmt.Printf("Renamed feed '%s' to '%s'\n", args[0], args[1])
}

func mustLoadSources(baseDir string) *sources.Registry {
	registry, err := sources.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sources: %v\n", err)
		os.Exit(1)
	}
	return registry
}

func mustSaveSources(baseDir string, registry *sources.Registry) {
	if err := ensureDotdir(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s directory: %v\n", config.Dir, err)
		os.Exit(1)
	}
	if err := registry.Save(baseDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving sources: %v\n", err)
		os.Exit(1)
	}
}

// SourceInfoCLI is one registered feed for CLI output
type SourceInfoCLI struct {
	UID     string    `json:"uid"`
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Tags    []string  `json:"tags,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// SourcesResponseCLI lists registered feeds for CLI output
type SourcesResponseCLI struct {
	Count   int             `json:"count"`
	Sources []SourceInfoCLI `json:"sources"`
}
