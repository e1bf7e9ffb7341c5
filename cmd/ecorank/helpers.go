package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ecorank/internal/catalog"
	"ecorank/internal/config"
	"ecorank/internal/logging"
	"ecorank/internal/sources"
	"ecorank/internal/storage"
)

// getProjectRoot returns the project root directory: the --project flag
// when set, the current directory otherwise.
func getProjectRoot() (string, error) {
	if projectFlag != "" {
		return filepath.Abs(projectFlag)
	}
	return os.Getwd()
}

// mustGetProjectRoot returns the project root or exits on error.
func mustGetProjectRoot() string {
	root, err := getProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// loadProjectConfig loads the project config, falling back to defaults
// when no config file exists or it cannot be read.
func loadProjectConfig(baseDir string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(baseDir)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// mustLoadConfig loads the project config or exits. Commands that write
// the config back use this so a parse error never gets papered over
// with defaults.
func mustLoadConfig(baseDir string) *config.Config {
	cfg, err := config.LoadConfig(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// ensureDotdir creates the .ecorank directory if it is missing.
func ensureDotdir(baseDir string) error {
	return os.MkdirAll(filepath.Join(baseDir, config.Dir), 0755)
}

// resolveInputPaths decides which catalog feeds to read. Explicit
// --input flags win; otherwise the source registry; otherwise the
// configured catalog path. Relative paths anchor at the project root.
func resolveInputPaths(baseDir string, cfg *config.Config, inputs []string) ([]string, error) {
	paths := inputs
	if len(paths) == 0 {
		registry, err := sources.Load(baseDir)
		if err != nil {
			return nil, err
		}
		paths = registry.Paths()
	}
	if len(paths) == 0 {
		paths = []string{cfg.CatalogPath}
	}

	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = resolvePath(baseDir, p)
	}
	return resolved, nil
}

// resolvePath anchors a relative path at the project root.
func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// loadCatalog reads and merges the resolved feeds.
func loadCatalog(paths []string) (*catalog.Catalog, error) {
	return catalog.LoadAll(paths...)
}

// openRunRepository opens the run archive under the project dotdir.
func openRunRepository(baseDir string, logger *logging.Logger) (*storage.RunRepository, *storage.DB, error) {
	db, err := storage.Open(baseDir, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewRunRepository(db), db, nil
}

// newLogger creates a logger with the specified format.
func newLogger(format string) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(format),
		Level:  logging.InfoLevel,
	})
}
