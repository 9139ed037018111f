package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewIngestController); err != nil {
		return err
	}
	if err := container.Provide(NewRemediateController); err != nil {
		return err
	}
	if err := container.Provide(NewServeController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	ingestController *IngestController,
	remediateController *RemediateController,
	serveController *ServeController,
) *[]entities.Controller {
	return &[]entities.Controller{
		ingestController,
		remediateController,
		serveController,
	}
}
