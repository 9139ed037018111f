package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

const hostName = "github"

// PullRequestsAPI is the subset of the go-github pull requests service used here.
type PullRequestsAPI interface {
	Create(
		ctx context.Context, owner string, repo string, pull *gh.NewPullRequest,
	) (*gh.PullRequest, *gh.Response, error)
}

// GitHubReviewRepository opens pull requests on GitHub. Repositories are resolved
// under the configured owner (organization or user).
type GitHubReviewRepository struct {
	pulls PullRequestsAPI
	owner string
}

// NewGitHubReviewRepository creates a repository over an existing service.
func NewGitHubReviewRepository(pulls PullRequestsAPI, owner string) *GitHubReviewRepository {
	return &GitHubReviewRepository{pulls: pulls, owner: owner}
}

// NewReviewRepository builds the repository from review settings.
func NewReviewRepository(_ context.Context, cfg entities.ReviewConfig) (repositories.ReviewRepository, error) {
	client := gh.NewClient(nil).WithAuthToken(cfg.Token)
	if cfg.Endpoint != "" {
		enterprise, err := client.WithEnterpriseURLs(cfg.Endpoint, cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub endpoint %q: %w", cfg.Endpoint, err)
		}
		client = enterprise
	}
	return NewGitHubReviewRepository(client.PullRequests, cfg.Organization), nil
}

func (it *GitHubReviewRepository) Name() string { return hostName }

// OpenPullRequest creates the pull request from the draft branches.
func (it *GitHubReviewRepository) OpenPullRequest(
	ctx context.Context,
	draft entities.PullRequestDraft,
) (*entities.PullRequest, error) {
	owner := draft.Organization
	if owner == "" {
		owner = it.owner
	}

	sourceBranch := strings.TrimPrefix(draft.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(draft.DestinationBranch, "refs/heads/")

	maintainerCanModify := true
	pr, _, err := it.pulls.Create(ctx, owner, draft.RepositoryName, &gh.NewPullRequest{
		Title:               &draft.Title,
		Head:                &sourceBranch,
		Base:                &targetBranch,
		Body:                &draft.Description,
		MaintainerCanModify: &maintainerCanModify,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}
