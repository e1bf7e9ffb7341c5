package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecorank/internal/config"
	"ecorank/internal/errors"
	"ecorank/internal/logging"
	"ecorank/internal/scoring"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func setupTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()

	db, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	return db, dir
}

func sampleRun(id string, startedAt time.Time) *Run {
	haz := 75.2
	return &Run{
		RunID:             id,
		StartedAt:         startedAt,
		FinishedAt:        startedAt.Add(3 * time.Second),
		CatalogPaths:      []string{"data/materials.json"},
		OutputPath:        "data/materials_scored.json",
		Profile:           "balanced",
		Weights:           scoring.DefaultWeights(),
		ReferenceLifespan: 20,
		ProductCount:      120,
		MissingHazardous:  14,
		MeanTotal:         58.31,
		TopProducts: []TopProduct{
			{Name: "Hempcrete Block", HazardousSubstances: &haz, Circularity: 92.4, Certification: 66.67, Total: 80.38},
			{Name: "Recycled Steel Stud", HazardousSubstances: nil, Circularity: 88.0, Certification: 44.44, Total: 44.09},
		},
	}
}

func TestDatabaseInitialization(t *testing.T) {
	db, dir := setupTestDB(t)

	dbPath := filepath.Join(dir, config.Dir, DBFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not created at %s", dbPath)
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
	}

	version, err := db.getSchemaVersion()
	if err != nil {
		t.Fatalf("getSchemaVersion failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	repo := NewRunRepository(db)
	if err := repo.Create(sampleRun("run-1", time.Now().UTC())); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	count, err := NewRunRepository(db).Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1 after reopen", count)
	}
}

func TestRunRepository_CreateAndGet(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewRunRepository(db)

	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	want := sampleRun("d2f1c9c0-0000-4000-8000-000000000001", started)
	if err := repo.Create(want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.Get(want.RunID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.RunID != want.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, want.RunID)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if !got.FinishedAt.Equal(want.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, want.FinishedAt)
	}
	if len(got.CatalogPaths) != 1 || got.CatalogPaths[0] != "data/materials.json" {
		t.Errorf("CatalogPaths = %v", got.CatalogPaths)
	}
	if got.OutputPath != want.OutputPath {
		t.Errorf("OutputPath = %q, want %q", got.OutputPath, want.OutputPath)
	}
	if got.Profile != "balanced" {
		t.Errorf("Profile = %q, want balanced", got.Profile)
	}
	if got.Weights != scoring.DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", got.Weights)
	}
	if got.ProductCount != 120 || got.MissingHazardous != 14 {
		t.Errorf("counts = %d/%d, want 120/14", got.ProductCount, got.MissingHazardous)
	}
	if got.MeanTotal != 58.31 {
		t.Errorf("MeanTotal = %v, want 58.31", got.MeanTotal)
	}

	if len(got.TopProducts) != 2 {
		t.Fatalf("TopProducts length = %d, want 2", len(got.TopProducts))
	}
	first := got.TopProducts[0]
	if first.Name != "Hempcrete Block" || first.HazardousSubstances == nil || *first.HazardousSubstances != 75.2 {
		t.Errorf("first top product = %+v", first)
	}
	second := got.TopProducts[1]
	if second.HazardousSubstances != nil {
		t.Errorf("second top product should keep its unknown hazardous score, got %v", *second.HazardousSubstances)
	}
}

func TestRunRepository_Get_NotFound(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewRunRepository(db)

	_, err := repo.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing run")
	}
	if got := errors.CodeOf(err); got != errors.RunNotFound {
		t.Errorf("code = %s, want %s", got, errors.RunNotFound)
	}
}

func TestRunRepository_Create_NoID(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewRunRepository(db)

	run := sampleRun("", time.Now().UTC())
	if err := repo.Create(run); err == nil {
		t.Error("expected error for run without ID")
	}
}

func TestRunRepository_List(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewRunRepository(db)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		if err := repo.Create(sampleRun(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	runs, err := repo.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(runs))
	}
	if runs[0].RunID != "run-new" || runs[2].RunID != "run-old" {
		t.Errorf("runs not newest first: %s, %s, %s", runs[0].RunID, runs[1].RunID, runs[2].RunID)
	}

	limited, err := repo.List(2)
	if err != nil {
		t.Fatalf("List(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].RunID != "run-new" {
		t.Errorf("List(2) = %d runs starting %s, want 2 starting run-new", len(limited), limited[0].RunID)
	}
}

func TestRunRepository_Count(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewRunRepository(db)

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0", count)
	}

	if err := repo.Create(sampleRun("run-1", time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	count, err = repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}
