package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ecorank/internal/api"
	"ecorank/internal/logging"
	"ecorank/internal/storage"
)

var (
	servePort string
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the ecorank HTTP API server. The server exposes the scored
catalog over REST: material listings and detail, filter metadata,
recommendations with custom weights and profiles, the run archive, and
catalog reload.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	baseDir := mustGetProjectRoot()

	cfg := loadProjectConfig(baseDir, newLogger("human"))
	logger := logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
	if serveHost != "" {
		cfg.Listen.Host = serveHost
	}
	if servePort != "" {
		cfg.Listen.Port = servePort
	}

	// The run archive is optional for serving; without it the run
	// endpoints answer 503 and everything else still works.
	var runs *storage.RunRepository
	db, err := storage.Open(baseDir, logger)
	if err != nil {
		logger.Warn("Run archive unavailable, run endpoints disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer db.Close()
		runs = storage.NewRunRepository(db)
	}

	server, err := api.NewServer(baseDir, cfg, runs, logger)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		addr := cfg.Listen.Host + ":" + cfg.Listen.Port
		fmt.Printf("ecorank HTTP API server listening on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}

		logger.Info("Server stopped gracefully", nil)
	}

	return nil
}
