//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// AppendCall records a single invocation of Append.
type AppendCall struct {
	RepositoryName string
	Record         entities.VulnerabilityRecord
}

// SpyFindingsRepository implements repositories.FindingsRepository in memory.
type SpyFindingsRepository struct {
	mu sync.Mutex

	// --- Get ---
	Findings map[string]*entities.RepositoryFindings
	GetErr   error
	GetCalls []string

	// --- Append ---
	AppendErr   error
	AppendCalls []AppendCall
}

var _ repositories.FindingsRepository = (*SpyFindingsRepository)(nil)

// NewSpyFindingsRepository seeds the spy with the findings of one repository.
func NewSpyFindingsRepository(name string, records ...entities.VulnerabilityRecord) *SpyFindingsRepository {
	return &SpyFindingsRepository{
		Findings: map[string]*entities.RepositoryFindings{
			name: {RepositoryName: name, Vulnerabilities: records},
		},
	}
}

func (s *SpyFindingsRepository) Get(_ context.Context, name string) (*entities.RepositoryFindings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetCalls = append(s.GetCalls, name)
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.Findings[name], nil
}

func (s *SpyFindingsRepository) Append(
	_ context.Context,
	name string,
	record entities.VulnerabilityRecord,
) entities.AppendResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AppendCalls = append(s.AppendCalls, AppendCall{RepositoryName: name, Record: record})
	if s.AppendErr != nil {
		return entities.AppendFailed(s.AppendErr)
	}

	if s.Findings == nil {
		s.Findings = make(map[string]*entities.RepositoryFindings)
	}
	current := s.Findings[name]
	if current.Contains(record) {
		return entities.Duplicate()
	}
	if current == nil {
		current = &entities.RepositoryFindings{RepositoryName: name}
		s.Findings[name] = current
	}
	current.Vulnerabilities = append(current.Vulnerabilities, record)
	return entities.Appended()
}
