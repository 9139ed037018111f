//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// StubIngestCommand is a stub implementation of commands.Ingest.
type StubIngestCommand struct {
	ExecuteCallCount int
	Result           entities.IngestResult
	LastSettings     *entities.Settings
	LastRaw          any
}

var _ commands.Ingest = (*StubIngestCommand)(nil)

func (s *StubIngestCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	raw any,
) entities.IngestResult {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastRaw = raw
	return s.Result
}
