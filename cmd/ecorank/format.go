package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ecorank/internal/storage"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ScoreResponseCLI:
		return formatScoreHuman(v)
	case *CategoriesResponseCLI:
		return formatCategoriesHuman(v)
	case *SourcesResponseCLI:
		return formatSourcesHuman(v)
	case *ProfilesResponseCLI:
		return formatProfilesHuman(v)
	case *RunsResponseCLI:
		return formatRunsHuman(v)
	case *RunResponseCLI:
		return formatRunHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatScoreHuman formats a ScoreResponseCLI in human-readable format
func formatScoreHuman(resp *ScoreResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scored %d products from %d feeds\n", resp.Products, len(resp.Feeds)))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile: %s\n", resp.Profile))
	}
	b.WriteString(fmt.Sprintf("Weights: hazardous_substances=%v, circularity=%v, certification=%v\n",
		resp.Weights.HazardousSubstances, resp.Weights.Circularity, resp.Weights.Certification))
	b.WriteString(fmt.Sprintf("Reference lifespan: %v years\n", resp.ReferenceLifespan))
	if resp.MissingHazardous > 0 {
		b.WriteString(fmt.Sprintf("Products with unknown hazardous data: %d\n", resp.MissingHazardous))
	}
	b.WriteString(fmt.Sprintf("Mean total score: %.2f\n\n", resp.MeanTotal))

	b.WriteString("Top 5 products by total_score:\n")
	for _, p := range resp.Top {
		b.WriteString(formatTopProduct(p))
	}

	b.WriteString(fmt.Sprintf("\nScored catalog written to %s\n", resp.OutputPath))
	if resp.RunID != "" {
		b.WriteString(fmt.Sprintf("Run recorded: %s\n", resp.RunID))
	}

	return b.String(), nil
}

// formatTopProduct renders one ranked summary line. An unknown hazardous
// score prints as n/a.
func formatTopProduct(p storage.TopProduct) string {
	hazardous := "n/a"
	if p.HazardousSubstances != nil {
		hazardous = fmt.Sprintf("%v", *p.HazardousSubstances)
	}
	return fmt.Sprintf("- %s: total=%v, hazardous_substances=%s, circularity=%v, cert=%v\n",
		p.Name, p.Total, hazardous, p.Circularity, p.Certification)
}

// formatCategoriesHuman formats a CategoriesResponseCLI in human-readable format
func formatCategoriesHuman(resp *CategoriesResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Found %d categories\n", resp.Count))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, name := range resp.Categories {
		b.WriteString(fmt.Sprintf("  %s\n", name))
	}

	return b.String(), nil
}

// formatSourcesHuman formats a SourcesResponseCLI in human-readable format
func formatSourcesHuman(resp *SourcesResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Registered sources (%d)\n", resp.Count))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Count == 0 {
		b.WriteString("No sources registered. Add one with 'ecorank sources add <name> <path>'.\n")
		return b.String(), nil
	}

	for _, src := range resp.Sources {
		b.WriteString(fmt.Sprintf("  %s\n", src.Name))
		b.WriteString(fmt.Sprintf("    Path: %s\n", src.Path))
		if len(src.Tags) > 0 {
			b.WriteString(fmt.Sprintf("    Tags: %s\n", strings.Join(src.Tags, ", ")))
		}
		b.WriteString(fmt.Sprintf("    UID: %s\n", src.UID))
		b.WriteString(fmt.Sprintf("    Added: %s\n", src.AddedAt.Format(time.RFC3339)))
	}

	return b.String(), nil
}

// formatProfilesHuman formats a ProfilesResponseCLI in human-readable format
func formatProfilesHuman(resp *ProfilesResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scoring profiles (%d)\n", resp.Count))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Count == 0 {
		b.WriteString("No profiles defined. Run 'ecorank init' to create a starter profiles.toml.\n")
		return b.String(), nil
	}

	for _, prof := range resp.Profiles {
		b.WriteString(fmt.Sprintf("  %s\n", prof.Name))
		if prof.Description != "" {
			b.WriteString(fmt.Sprintf("    %s\n", prof.Description))
		}
		if prof.Weights != "" {
			b.WriteString(fmt.Sprintf("    Weights: %s\n", prof.Weights))
		}
		if prof.ReferenceLifespan > 0 {
			b.WriteString(fmt.Sprintf("    Reference lifespan: %v years\n", prof.ReferenceLifespan))
		}
		if len(prof.Require) > 0 {
			b.WriteString(fmt.Sprintf("    Requires Excellent: %s\n", strings.Join(prof.Require, ", ")))
		}
	}

	return b.String(), nil
}

// formatRunsHuman formats a RunsResponseCLI in human-readable format
func formatRunsHuman(resp *RunsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Archived runs (%d)\n", resp.Count))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Count == 0 {
		b.WriteString("No runs recorded yet. 'ecorank score' archives a run unless --no-record is set.\n")
		return b.String(), nil
	}

	for _, run := range resp.Runs {
		b.WriteString(fmt.Sprintf("  %s\n", run.RunID))
		b.WriteString(fmt.Sprintf("    Started: %s\n", run.StartedAt.Format(time.RFC3339)))
		b.WriteString(fmt.Sprintf("    Products: %d  Mean total: %.2f\n", run.ProductCount, run.MeanTotal))
		if run.Profile != "" {
			b.WriteString(fmt.Sprintf("    Profile: %s\n", run.Profile))
		}
	}

	return b.String(), nil
}

// formatRunHuman formats a single archived run in human-readable format
func formatRunHuman(resp *RunResponseCLI) (string, error) {
	run := resp.Run
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Run %s\n", run.RunID))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Started: %s\n", run.StartedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Finished: %s\n", run.FinishedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)))

	b.WriteString("Feeds:\n")
	for _, path := range run.CatalogPaths {
		b.WriteString(fmt.Sprintf("  - %s\n", path))
	}
	if run.OutputPath != "" {
		b.WriteString(fmt.Sprintf("Output: %s\n", run.OutputPath))
	}
	if run.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile: %s\n", run.Profile))
	}
	b.WriteString(fmt.Sprintf("Weights: hazardous_substances=%v, circularity=%v, certification=%v\n",
		run.Weights.HazardousSubstances, run.Weights.Circularity, run.Weights.Certification))
	b.WriteString(fmt.Sprintf("Reference lifespan: %v years\n", run.ReferenceLifespan))
	b.WriteString(fmt.Sprintf("Products: %d (unknown hazardous data: %d)\n", run.ProductCount, run.MissingHazardous))
	b.WriteString(fmt.Sprintf("Mean total score: %.2f\n\n", run.MeanTotal))

	b.WriteString("Top products:\n")
	for _, p := range run.TopProducts {
		b.WriteString(formatTopProduct(p))
	}

	return b.String(), nil
}
