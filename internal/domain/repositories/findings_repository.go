package repositories

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// FindingsRepository is the per-repository aggregation store.
//
// Append checks membership and then appends with the store's native atomic list
// append. The two steps are not atomic together: two identical findings for the
// same repository arriving at the same time can both pass the check and both be
// stored. Appends to different repositories never interact.
type FindingsRepository interface {
	// Get returns the aggregated findings, or nil when the repository has none.
	Get(ctx context.Context, repositoryName string) (*entities.RepositoryFindings, error)

	// Append stores the record unless an identical one exists. Store failures are
	// logged and reported through the result, never returned as an error.
	Append(ctx context.Context, repositoryName string, record entities.VulnerabilityRecord) entities.AppendResult
}
