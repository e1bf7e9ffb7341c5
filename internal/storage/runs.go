package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ecorank/internal/errors"
	"ecorank/internal/scoring"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 20

// Run is one archived scoring run
type Run struct {
	// RunID is the immutable UUID of the run
	RunID string `json:"run_id"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// CatalogPaths are the feeds that were scored, in load order
	CatalogPaths []string `json:"catalog_paths"`

	// OutputPath is where the annotated catalog was written, if anywhere
	OutputPath string `json:"output_path,omitempty"`

	// Profile is the applied profile name, if any
	Profile string `json:"profile,omitempty"`

	// Weights and ReferenceLifespan pin down how totals were aggregated
	Weights           scoring.Weights `json:"weights"`
	ReferenceLifespan float64         `json:"reference_lifespan"`

	// ProductCount is how many products were scored
	ProductCount int `json:"product_count"`

	// MissingHazardous counts products whose hazardous score was unknown
	MissingHazardous int `json:"missing_hazardous"`

	// MeanTotal is the average total score across the run
	MeanTotal float64 `json:"mean_total"`

	// TopProducts are the highest-scoring products, best first
	TopProducts []TopProduct `json:"top_products"`
}

// TopProduct is a summary line in a run record. It mirrors the scored
// output closely enough that a run can be reprinted without the catalog.
type TopProduct struct {
	Name                string   `json:"name"`
	HazardousSubstances *float64 `json:"hazardous_substances"`
	Circularity         float64  `json:"circularity"`
	Certification       float64  `json:"certification"`
	Total               float64  `json:"total"`
}

// RunRepository provides access to the runs table
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run record
func (r *RunRepository) Create(run *Run) error {
	if run.RunID == "" {
		return errors.New(errors.InternalError, "run record has no ID")
	}

	pathsJSON, err := json.Marshal(run.CatalogPaths)
	if err != nil {
		return fmt.Errorf("marshal catalog paths: %w", err)
	}
	topJSON, err := json.Marshal(run.TopProducts)
	if err != nil {
		return fmt.Errorf("marshal top products: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO runs (
			run_id, started_at, finished_at, catalog_paths, output_path, profile,
			weight_hazardous_substances, weight_circularity, weight_certification,
			reference_lifespan, product_count, missing_hazardous, mean_total, top_products
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		string(pathsJSON),
		run.OutputPath,
		run.Profile,
		run.Weights.HazardousSubstances,
		run.Weights.Circularity,
		run.Weights.Certification,
		run.ReferenceLifespan,
		run.ProductCount,
		run.MissingHazardous,
		run.MeanTotal,
		string(topJSON),
	)
	if err != nil {
		return errors.Wrap(errors.StorageUnavailable, "record run", err)
	}

	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(runID string) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT run_id, started_at, finished_at, catalog_paths, output_path, profile,
		       weight_hazardous_substances, weight_circularity, weight_certification,
		       reference_lifespan, product_count, missing_hazardous, mean_total, top_products
		FROM runs WHERE run_id = ?
	`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.RunNotFound, fmt.Sprintf("run %q not found", runID))
	}
	if err != nil {
		return nil, errors.Wrap(errors.StorageUnavailable, "read run", err)
	}
	return run, nil
}

// List retrieves runs newest first. A non-positive limit applies
// DefaultListLimit.
func (r *RunRepository) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query(`
		SELECT run_id, started_at, finished_at, catalog_paths, output_path, profile,
		       weight_hazardous_substances, weight_circularity, weight_certification,
		       reference_lifespan, product_count, missing_hazardous, mean_total, top_products
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.StorageUnavailable, "list runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(errors.StorageUnavailable, "scan run", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StorageUnavailable, "list runs", err)
	}

	return runs, nil
}

// Count returns the number of archived runs
func (r *RunRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.StorageUnavailable, "count runs", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var startedAt, finishedAt, pathsJSON, topJSON string

	err := s.Scan(
		&run.RunID,
		&startedAt,
		&finishedAt,
		&pathsJSON,
		&run.OutputPath,
		&run.Profile,
		&run.Weights.HazardousSubstances,
		&run.Weights.Circularity,
		&run.Weights.Certification,
		&run.ReferenceLifespan,
		&run.ProductCount,
		&run.MissingHazardous,
		&run.MeanTotal,
		&topJSON,
	)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	if err := json.Unmarshal([]byte(pathsJSON), &run.CatalogPaths); err != nil {
		return nil, fmt.Errorf("parse catalog_paths: %w", err)
	}
	if err := json.Unmarshal([]byte(topJSON), &run.TopProducts); err != nil {
		return nil, fmt.Errorf("parse top_products: %w", err)
	}

	return &run, nil
}
