package gitlab

import (
	"context"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

const hostName = "gitlab"

// MergeRequestsAPI is the subset of the GitLab merge requests service used here.
type MergeRequestsAPI interface {
	CreateMergeRequest(
		pid interface{}, opt *gl.CreateMergeRequestOptions, options ...gl.RequestOptionFunc,
	) (*gl.MergeRequest, *gl.Response, error)
}

// GitLabReviewRepository opens merge requests on GitLab projects of one group.
type GitLabReviewRepository struct {
	mergeRequests MergeRequestsAPI
	group         string
}

// NewGitLabReviewRepository creates a repository over an existing service.
func NewGitLabReviewRepository(mergeRequests MergeRequestsAPI, group string) *GitLabReviewRepository {
	return &GitLabReviewRepository{mergeRequests: mergeRequests, group: group}
}

// NewReviewRepository builds the repository from review settings.
func NewReviewRepository(_ context.Context, cfg entities.ReviewConfig) (repositories.ReviewRepository, error) {
	var opts []gl.ClientOptionFunc
	if cfg.Endpoint != "" {
		opts = append(opts, gl.WithBaseURL(cfg.Endpoint))
	}

	client, err := gl.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return NewGitLabReviewRepository(client.MergeRequests, cfg.Organization), nil
}

func (it *GitLabReviewRepository) Name() string { return hostName }

// OpenPullRequest creates a merge request from the draft branches.
func (it *GitLabReviewRepository) OpenPullRequest(
	ctx context.Context,
	draft entities.PullRequestDraft,
) (*entities.PullRequest, error) {
	group := draft.Organization
	if group == "" {
		group = it.group
	}

	pid := group + "/" + draft.RepositoryName
	mr, _, err := it.mergeRequests.CreateMergeRequest(
		pid,
		&gl.CreateMergeRequestOptions{
			Title:              gl.Ptr(draft.Title),
			Description:        gl.Ptr(draft.Description),
			SourceBranch:       gl.Ptr(strings.TrimPrefix(draft.SourceBranch, "refs/heads/")),
			TargetBranch:       gl.Ptr(strings.TrimPrefix(draft.DestinationBranch, "refs/heads/")),
			RemoveSourceBranch: gl.Ptr(true),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}

	return &entities.PullRequest{
		ID:     int(mr.IID),
		Title:  mr.Title,
		URL:    mr.WebURL,
		Status: mr.State,
	}, nil
}
