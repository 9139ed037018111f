package controllers

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// RemediateController handles the "remediate" subcommand.
type RemediateController struct {
	command commands.Remediate
}

// NewRemediateController creates a new RemediateController.
func NewRemediateController(command commands.Remediate) *RemediateController {
	return &RemediateController{command: command}
}

// GetBind returns the Cobra command metadata for the remediate controller.
func (it *RemediateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "remediate",
		Short: "Open a pull request fixing the aggregated vulnerabilities",
		Long: `Read the aggregated vulnerabilities of an ECR repository, clone its source
repository, ask the configured model for a patched requirements.txt until
one can be applied, push it to a dedicated branch and open a pull request.

The repository defaults to application.name, then ECR_REPO_NAME.`,
	}
}

// AddFlags adds the remediate-specific flags to the given Cobra command.
func (it *RemediateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("repository", "", "ECR repository to remediate (default: application.name)")
	cmd.Flags().Duration("timeout", 0, "Abort the run after this duration (default: no limit)")
}

// Execute runs one remediation.
func (it *RemediateController) Execute(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	repository, _ := cmd.Flags().GetString("repository")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	result, err := it.command.Execute(ctx, settings, commands.RemediateOptions{
		RepositoryName: repository,
		DryRun:         dryRun,
		Verbose:        verbose,
	})
	if err != nil {
		logger.Errorf("Remediation failed: %v", err)
		return
	}
	if result == nil {
		return
	}

	logger.Infof(
		"Remediation of %q complete in %s: %d model call(s), committed=%t",
		result.Repository, time.Since(started).Round(time.Millisecond), result.Attempts, result.Committed,
	)
}
