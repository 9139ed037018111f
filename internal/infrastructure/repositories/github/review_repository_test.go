//go:build unit

package github_test

import (
	"context"
	"errors"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	ghRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/github"
)

type pullsStub struct {
	err    error
	owners []string
	repos  []string
	pulls  []*gh.NewPullRequest
}

func (s *pullsStub) Create(
	_ context.Context, owner string, repo string, pull *gh.NewPullRequest,
) (*gh.PullRequest, *gh.Response, error) {
	s.owners = append(s.owners, owner)
	s.repos = append(s.repos, repo)
	s.pulls = append(s.pulls, pull)
	if s.err != nil {
		return nil, nil, s.err
	}
	return &gh.PullRequest{
		Number:  gh.Int(7),
		Title:   pull.Title,
		HTMLURL: gh.String("https://github.com/acme/app/pull/7"),
		State:   gh.String("open"),
	}, nil, nil
}

func TestGitHubReviewRepositoryOpenPullRequest(t *testing.T) {
	t.Parallel()

	t.Run("should open the pull request under the configured owner", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &pullsStub{}
		repo := ghRepo.NewGitHubReviewRepository(stub, "acme")
		draft := entities.NewPullRequestDraft("app", "cve_finder", "main", "completion")

		// when
		pr, err := repo.OpenPullRequest(context.Background(), draft)

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, pr.ID)
		assert.Equal(t, "https://github.com/acme/app/pull/7", pr.URL)
		assert.Equal(t, []string{"acme"}, stub.owners)
		assert.Equal(t, []string{"app"}, stub.repos)
		pull := stub.pulls[0]
		assert.Equal(t, "cve_finder", pull.GetHead())
		assert.Equal(t, "main", pull.GetBase())
		assert.Equal(t, "completion", pull.GetBody())
		assert.Equal(t, entities.PullRequestTitle, pull.GetTitle())
	})

	t.Run("should prefer the draft organization", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &pullsStub{}
		repo := ghRepo.NewGitHubReviewRepository(stub, "acme")
		draft := entities.NewPullRequestDraft("app", "cve_finder", "main", "")
		draft.Organization = "other"

		// when
		_, err := repo.OpenPullRequest(context.Background(), draft)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"other"}, stub.owners)
	})

	t.Run("should fail when the API fails", func(t *testing.T) {
		t.Parallel()

		// given
		repo := ghRepo.NewGitHubReviewRepository(&pullsStub{err: errors.New("422 Validation Failed")}, "acme")

		// when
		_, err := repo.OpenPullRequest(context.Background(), entities.NewPullRequestDraft("app", "b", "main", ""))

		// then
		assert.ErrorContains(t, err, "422")
	})
}
