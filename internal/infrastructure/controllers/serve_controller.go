package controllers

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/handlers"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// ServeController handles the "serve" subcommand.
type ServeController struct {
	command commands.Ingest
}

// NewServeController creates a new ServeController.
func NewServeController(command commands.Ingest) *ServeController {
	return &ServeController{command: command}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Serve the ingestion webhook",
		Long: `Start an HTTP server exposing:

  POST /findings     ingest one finding event
  GET  /healthcheck  liveness probe
  GET  /metrics      Prometheus metrics`,
	}
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("address", "", "Listen address (default: server.address, then :8080)")
}

// Execute runs the server until SIGINT or SIGTERM.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}
	if address, _ := cmd.Flags().GetString("address"); address != "" {
		settings.Server.Address = address
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              settings.Server.Address,
		Handler:           handlers.NewRouter(handlers.NewFindingsHandler(it.command, settings)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Errorf("[http] Shutdown failed: %v", shutdownErr)
		}
	}()

	logger.Infof("[http] Listening on %s", settings.Server.Address)
	if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Errorf("[http] Server failed: %v", serveErr)
	}
}
