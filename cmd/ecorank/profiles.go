package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecorank/internal/profiles"
	"ecorank/internal/scoring"
)

var (
	profilesFormat string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the scoring profiles",
	Long: `List the named scoring profiles in .ecorank/profiles.toml. A profile
bundles aggregation weights, a reference lifespan, and required-Excellent
metrics under one name for 'ecorank score --profile' and the recommend API.

Examples:
  ecorank profiles
  ecorank profiles show strict`,
	Args: cobra.NoArgs,
	Run:  runProfilesList,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one scoring profile",
	Args:  cobra.ExactArgs(1),
	Run:   runProfilesShow,
}

func init() {
	profilesCmd.PersistentFlags().StringVar(&profilesFormat, "format", "human", "Output format (json, human)")
	profilesCmd.AddCommand(profilesShowCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesList(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	file := mustLoadProfiles(baseDir)

	resp := &ProfilesResponseCLI{
		Count:    len(file.Profiles),
		Profiles: make([]ProfileInfoCLI, 0, len(file.Profiles)),
	}
	for i := range file.Profiles {
		resp.Profiles = append(resp.Profiles, profileInfo(&file.Profiles[i]))
	}

	output, err := FormatResponse(resp, OutputFormat(profilesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runProfilesShow(cmd *cobra.Command, args []string) {
	baseDir := mustGetProjectRoot()
	file := mustLoadProfiles(baseDir)

	prof, err := file.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &ProfilesResponseCLI{
		Count:    1,
		Profiles: []ProfileInfoCLI{profileInfo(prof)},
	}

	output, err := FormatResponse(resp, OutputFormat(profilesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func mustLoadProfiles(baseDir string) *profiles.File {
	file, err := profiles.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
		os.Exit(1)
	}
	return file
}

func profileInfo(p *profiles.Profile) ProfileInfoCLI {
	info := ProfileInfoCLI{
		Name:              p.Name,
		Description:       p.Description,
		ReferenceLifespan: p.ReferenceLifespan,
		Require:           p.Require,
	}
	weights := scoring.Weights{
		HazardousSubstances: p.WeightHazardousSubstances,
		Circularity:         p.WeightCircularity,
		Certification:       p.WeightCertification,
	}
	if !weights.IsZero() {
		info.Weights = fmt.Sprintf("hazardous_substances=%v, circularity=%v, certification=%v",
			weights.HazardousSubstances, weights.Circularity, weights.Certification)
	}
	return info
}

// ProfileInfoCLI is one scoring profile for CLI output
type ProfileInfoCLI struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Weights           string   `json:"weights,omitempty"`
	ReferenceLifespan float64  `json:"reference_lifespan,omitempty"`
	Require           []string `json:"require,omitempty"`
}

// ProfilesResponseCLI lists scoring profiles for CLI output
type ProfilesResponseCLI struct {
	Count    int              `json:"count"`
	Profiles []ProfileInfoCLI `json:"profiles"`
}
