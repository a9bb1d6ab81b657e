package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rianlucascs/dowtrend/internal/api"
	"github.com/rianlucascs/dowtrend/internal/api/handlers"
	"github.com/rianlucascs/dowtrend/internal/external/b3"
)

const shutdownTimeout = 30 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only results API",
	Long: `Start the HTTP API that serves saved results to downstream consumers.

Endpoints:
  GET /health
  GET /api/indices
  GET /api/results/{sample}?format=json|table
  GET /api/results/{sample}/rank?horizon=&direction=&limit=
  GET /api/results/{sample}/summary

Example:
  go run ./cmd/dowtrend serve
  go run ./cmd/dowtrend serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if servePort != "" {
		a.cfg.Port = servePort
	}

	catalog, err := b3.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load index catalog: %w", err)
	}

	router := api.NewRouter(
		handlers.NewResultsHandler(a.persister, a.cfg.TopN, a.logger),
		handlers.NewIndicesHandler(catalog),
		a.logger,
	)
	server := api.New(a.cfg, a.logger, router)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	PrintInfo(fmt.Sprintf("API listening on %s", server.Addr()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	a.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.logger.Info("Server stopped")
	return nil
}
