//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// StubRemediateCommand is a stub implementation of commands.Remediate.
type StubRemediateCommand struct {
	ExecuteCallCount int
	Result           *entities.RemediationResult
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.RemediateOptions
	LastDeadline     bool
}

var _ commands.Remediate = (*StubRemediateCommand)(nil)

func (s *StubRemediateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts commands.RemediateOptions,
) (*entities.RemediationResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	_, s.LastDeadline = ctx.Deadline()
	return s.Result, s.ExecuteErr
}
