//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// SpyReviewRepository implements repositories.ReviewRepository as a configurable spy.
type SpyReviewRepository struct {
	HostName string

	CreatedPR *entities.PullRequest
	Err       error
	// spy: drafts received
	Drafts []entities.PullRequestDraft
}

var _ repositories.ReviewRepository = (*SpyReviewRepository)(nil)

func (s *SpyReviewRepository) Name() string {
	if s.HostName == "" {
		return "spy"
	}
	return s.HostName
}

func (s *SpyReviewRepository) OpenPullRequest(
	_ context.Context,
	draft entities.PullRequestDraft,
) (*entities.PullRequest, error) {
	s.Drafts = append(s.Drafts, draft)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreatedPR != nil {
		return s.CreatedPR, nil
	}
	return &entities.PullRequest{
		ID:    1,
		Title: draft.Title,
		URL:   "https://example.com/pr/1",
	}, nil
}
