package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/puzzle-scout/internal/repository"
	"github.com/puzzle-scout/internal/service"
	"github.com/puzzle-scout/internal/storage"
	"github.com/puzzle-scout/internal/webui"
)

var (
	// Serve command flags
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server for running solves and browsing runs",
	Long: `Start an HTTP server exposing the solve API:

  POST /api/solve                 solve the map in the request body
  GET  /api/runs                  list recorded runs
  GET  /api/runs/{uuid}/report    fetch a stored report
  GET  /healthz                   liveness check

Runs are recorded in the configured database and reports are written to
the configured storage backend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	binName := BinName()
	serveCmd.Example = `  # Start with the default configuration
  ` + binName + ` serve

  # Pick a port
  ` + binName + ` serve -p 9090`

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port for the web server (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	db, err := repository.NewGormDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	repo := repository.NewGormRunRepository(db)
	if err := repo.Migrate(); err != nil {
		return err
	}

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	port := cfg.WebUI.Port
	if servePort > 0 {
		port = servePort
	}

	svc := service.New(cfg, log, repo, store)
	server := webui.NewServer(port, log, svc, repo, store)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn("shutdown: %v", err)
		}
	}()

	log.Info("puzzle-scout listening on http://localhost:%d", port)
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
