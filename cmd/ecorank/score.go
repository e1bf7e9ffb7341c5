package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ecorank/internal/catalog"
	"ecorank/internal/logging"
	"ecorank/internal/profiles"
	"ecorank/internal/recommend"
	"ecorank/internal/scoring"
	"ecorank/internal/storage"
)

var (
	scoreInputs            []string
	scoreOutput            string
	scoreProfile           string
	scoreWeightHazardous   float64
	scoreWeightCircularity float64
	scoreWeightCert        float64
	scoreReferenceLifespan float64
	scoreNoRecord          bool
	scoreFormat            string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank a product catalog",
	Long: `Score a catalog of building-material products and rank them by
sustainability.

Reads one or more JSON product feeds, derives the hazardous-substances,
circularity & lifespan, and certification scores for every product, and
writes the annotated catalog sorted by total score, best first. The five
highest-scoring products are printed as a summary, and the run is
archived unless --no-record is set.

A --profile can override weights and the reference lifespan; a profile
with required metrics keeps only products rated Excellent on them.

Feeds come from --input flags, the source registry, or the configured
catalog path, in that order of preference. An --output ending in .gz is
gzip-compressed.

Examples:
  ecorank score
  ecorank score --input data/materials.json --output scored.json.gz
  ecorank score --profile circular
  ecorank score --weight-circularity 0.6 --weight-certification 0
  ecorank score --reference-lifespan 40`,
	Args: cobra.NoArgs,
	Run:  runScore,
}

func init() {
	scoreCmd.Flags().StringArrayVar(&scoreInputs, "input", nil, "Product feed to score (repeatable)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "scored_products.json", "Where to write the scored catalog")
	scoreCmd.Flags().StringVar(&scoreProfile, "profile", "", "Scoring profile to apply")
	scoreCmd.Flags().Float64Var(&scoreWeightHazardous, "weight-hazardous-substances", 0, "Weight of the hazardous-substances score")
	scoreCmd.Flags().Float64Var(&scoreWeightCircularity, "weight-circularity", 0, "Weight of the circularity & lifespan score")
	scoreCmd.Flags().Float64Var(&scoreWeightCert, "weight-certification", 0, "Weight of the certification score")
	scoreCmd.Flags().Float64Var(&scoreReferenceLifespan, "reference-lifespan", 0, "Expected-lifespan ceiling in years")
	scoreCmd.Flags().BoolVar(&scoreNoRecord, "no-record", false, "Skip archiving this run")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) {
	logger := newLogger(scoreFormat)
	baseDir := mustGetProjectRoot()
	cfg := loadProjectConfig(baseDir, logger)

	paths, err := resolveInputPaths(baseDir, cfg, scoreInputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input feeds: %v\n", err)
		os.Exit(1)
	}

	startedAt := time.Now().UTC()
	cat, err := loadCatalog(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.ScoringOptions()
	var required []string
	if scoreProfile != "" {
		profs, err := profiles.Load(baseDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
			os.Exit(1)
		}
		prof, err := profs.Get(scoreProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := prof.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = prof.Apply(opts)
		required = prof.Require
	}

	// Explicit weight flags override both config and profile, each one
	// independently.
	if cmd.Flags().Changed("weight-hazardous-substances") {
		opts.Weights.HazardousSubstances = scoreWeightHazardous
	}
	if cmd.Flags().Changed("weight-circularity") {
		opts.Weights.Circularity = scoreWeightCircularity
	}
	if cmd.Flags().Changed("weight-certification") {
		opts.Weights.Certification = scoreWeightCert
	}
	if cmd.Flags().Changed("reference-lifespan") {
		opts.ReferenceLifespan = scoreReferenceLifespan
	}

	items := recommend.Rank(cat.Products(), recommend.Request{
		RequiredMetrics: required,
		Options:         opts,
	})

	annotated := make([]scoring.Product, len(items))
	missingHazardous := 0
	totalSum := 0.0
	for i, item := range items {
		annotated[i] = scoring.Annotate(item.Product, item.Scores)
		if item.Scores.HazardousSubstances == nil {
			missingHazardous++
		}
		totalSum += item.Scores.Total
	}
	meanTotal := 0.0
	if len(items) > 0 {
		meanTotal = math.Round(totalSum/float64(len(items))*100) / 100
	}

	outputPath := resolvePath(baseDir, scoreOutput)
	if err := catalog.Write(outputPath, annotated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing scored catalog: %v\n", err)
		os.Exit(1)
	}

	top := make([]storage.TopProduct, 0, 5)
	for i, item := range items {
		if i >= 5 {
			break
		}
		top = append(top, storage.TopProduct{
			Name:                catalog.ProductName(item.Product),
			HazardousSubstances: item.Scores.HazardousSubstances,
			Circularity:         item.Scores.Circularity,
			Certification:       item.Scores.Certification,
			Total:               item.Scores.Total,
		})
	}

	resp := &ScoreResponseCLI{
		Products:          len(items),
		Feeds:             paths,
		OutputPath:        outputPath,
		Profile:           scoreProfile,
		Weights:           opts.Weights,
		ReferenceLifespan: opts.ReferenceLifespan,
		MissingHazardous:  missingHazardous,
		MeanTotal:         meanTotal,
		Top:               top,
	}

	if !scoreNoRecord {
		resp.RunID = recordRun(baseDir, logger, &storage.Run{
			RunID:             uuid.NewString(),
			StartedAt:         startedAt,
			FinishedAt:        time.Now().UTC(),
			CatalogPaths:      paths,
			OutputPath:        outputPath,
			Profile:           scoreProfile,
			Weights:           opts.Weights,
			ReferenceLifespan: opts.ReferenceLifespan,
			ProductCount:      len(items),
			MissingHazardous:  missingHazardous,
			MeanTotal:         meanTotal,
			TopProducts:       top,
		})
	}

	output, err := FormatResponse(resp, OutputFormat(scoreFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// recordRun archives a run, returning its ID. Archival is best effort:
// a broken archive costs the record, never the scored output.
func recordRun(baseDir string, logger *logging.Logger, run *storage.Run) string {
	repo, db, err := openRunRepository(baseDir, logger)
	if err != nil {
		logger.Warn("Failed to open run archive", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	defer db.Close()

	if err := repo.Create(run); err != nil {
		logger.Warn("Failed to archive run", map[string]interface{}{
			"error":  err.Error(),
			"run_id": run.RunID,
		})
		return ""
	}
	return run.RunID
}

// ScoreResponseCLI summarizes a scoring run for CLI output
type ScoreResponseCLI struct {
	Products          int                  `json:"products"`
	Feeds             []string             `json:"feeds"`
	OutputPath        string               `json:"output_path"`
	Profile           string               `json:"profile,omitempty"`
	Weights           scoring.Weights      `json:"weights"`
	ReferenceLifespan float64              `json:"reference_lifespan"`
	MissingHazardous  int                  `json:"missing_hazardous"`
	MeanTotal         float64              `json:"mean_total"`
	Top               []storage.TopProduct `json:"top"`
	RunID             string               `json:"run_id,omitempty"`
}
