//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// StubModelRepository answers with Completions in order, repeating the last one.
type StubModelRepository struct {
	ModelName   string
	Completions []string
	Err         error

	// spy: prompts received
	Prompts []string
}

var _ repositories.ModelRepository = (*StubModelRepository)(nil)

func (s *StubModelRepository) Name() string {
	if s.ModelName == "" {
		return "stub"
	}
	return s.ModelName
}

func (s *StubModelRepository) Invoke(_ context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Completions) == 0 {
		return "", nil
	}

	index := len(s.Prompts) - 1
	if index >= len(s.Completions) {
		index = len(s.Completions) - 1
	}
	return s.Completions[index], nil
}
