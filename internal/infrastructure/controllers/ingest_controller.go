package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// IngestController handles the "ingest" subcommand.
type IngestController struct {
	command commands.Ingest
}

// NewIngestController creates a new IngestController.
func NewIngestController(command commands.Ingest) *IngestController {
	return &IngestController{command: command}
}

// GetBind returns the Cobra command metadata for the ingest controller.
func (it *IngestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "ingest [event.json|-]",
		Short: "Aggregate one vulnerability finding event",
		Long: `Normalize an Amazon Inspector finding event and append its vulnerability
to the aggregation store of the affected ECR repository.

The event is read from the given file, or from stdin when the argument
is "-" or missing. The result is printed as JSON.`,
	}
}

// Execute ingests the event and prints the result.
func (it *IngestController) Execute(cmd *cobra.Command, args []string) {
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	data, err := readEvent(cmd, args)
	if err != nil {
		logger.Errorf("failed to read event: %v", err)
		return
	}

	raw, err := entities.ParseScannerEvent(data)
	if err != nil {
		logger.Errorf("%v", err)
	}

	result := it.command.Execute(cmd.Context(), settings, raw)
	output, _ := json.MarshalIndent(result, "", "  ")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(output))
}

func readEvent(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
