package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ecorank/internal/config"
	"ecorank/internal/errors"
	"ecorank/internal/profiles"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ecorank configuration",
	Long:  "Creates a .ecorank/ directory with default configuration and a starter profiles.toml in the project root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .ecorank directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	baseDir, err := getProjectRoot()
	if err != nil {
		return errors.Wrap(errors.InternalError, "Failed to resolve project root", err)
	}

	// Check if .ecorank already exists
	dotdir := filepath.Join(baseDir, config.Dir)
	if _, statErr := os.Stat(dotdir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("ecorank already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(dotdir, config.FileName))
			fmt.Println("\nRun 'ecorank init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(dotdir); removeErr != nil {
			return errors.Wrap(errors.InternalError, "Failed to remove existing .ecorank directory", removeErr)
		}
		logger.Info("Removed existing .ecorank directory", nil)
	}

	if mkdirErr := os.MkdirAll(dotdir, 0755); mkdirErr != nil {
		return errors.Wrap(errors.InternalError, "Failed to create .ecorank directory", mkdirErr)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(baseDir); err != nil {
		return errors.Wrap(errors.InternalError, "Failed to write config file", err)
	}
	configPath := filepath.Join(dotdir, config.FileName)

	if err := profiles.CreateStarterFile(baseDir); err != nil {
		return errors.Wrap(errors.InternalError, "Failed to write starter profiles", err)
	}

	logger.Info("ecorank initialized successfully", map[string]interface{}{
		"config_path": configPath,
	})

	fmt.Println("ecorank initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Printf("Starter profiles written to: %s\n", filepath.Join(dotdir, profiles.FileName))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Register a product feed: 'ecorank sources add main path/to/materials.json'")
	fmt.Println("  2. Run 'ecorank score' to rank the catalog")
	fmt.Println("  3. Run 'ecorank serve' to expose the HTTP API")

	return nil
}
