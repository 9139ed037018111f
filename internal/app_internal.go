package internal

import (
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// AppInternal holds everything the CLI needs once the container is resolved.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal out of the registered controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers to bind as subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
