package repositories

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// ReviewRepository opens pull requests on a source-control host.
type ReviewRepository interface {
	// Name returns the host identifier (e.g. "codecommit").
	Name() string

	// OpenPullRequest submits the draft and returns the created pull request.
	OpenPullRequest(ctx context.Context, draft entities.PullRequestDraft) (*entities.PullRequest, error)
}
