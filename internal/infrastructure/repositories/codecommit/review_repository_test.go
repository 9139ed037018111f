//go:build unit

package codecommit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codecommit"
	"github.com/aws/aws-sdk-go-v2/service/codecommit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	ccRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/codecommit"
)

type codeCommitStub struct {
	output *codecommit.CreatePullRequestOutput
	err    error
	inputs []*codecommit.CreatePullRequestInput
}

func (s *codeCommitStub) CreatePullRequest(
	_ context.Context, params *codecommit.CreatePullRequestInput, _ ...func(*codecommit.Options),
) (*codecommit.CreatePullRequestOutput, error) {
	s.inputs = append(s.inputs, params)
	return s.output, s.err
}

func createdOutput(id string) *codecommit.CreatePullRequestOutput {
	return &codecommit.CreatePullRequestOutput{
		PullRequest: &types.PullRequest{
			PullRequestId:     aws.String(id),
			Title:             aws.String(entities.PullRequestTitle),
			PullRequestStatus: types.PullRequestStatusEnumOpen,
		},
	}
}

func TestCodeCommitReviewRepositoryOpenPullRequest(t *testing.T) {
	t.Parallel()

	t.Run("should create a single-target pull request", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &codeCommitStub{output: createdOutput("42")}
		repo := ccRepo.NewCodeCommitReviewRepository(stub, "us-west-2")
		draft := entities.NewPullRequestDraft("app", "cve_finder", "main", "completion")

		// when
		pr, err := repo.OpenPullRequest(context.Background(), draft)

		// then
		require.NoError(t, err)
		assert.Equal(t, 42, pr.ID)
		assert.Equal(t, "OPEN", pr.Status)
		assert.Contains(t, pr.URL, "/repositories/app/pull-requests/42/")
		require.Len(t, stub.inputs, 1)
		input := stub.inputs[0]
		assert.Equal(t, entities.PullRequestTitle, aws.ToString(input.Title))
		assert.Equal(t, "completion", aws.ToString(input.Description))
		require.Len(t, input.Targets, 1)
		assert.Equal(t, "app", aws.ToString(input.Targets[0].RepositoryName))
		assert.Equal(t, "cve_finder", aws.ToString(input.Targets[0].SourceReference))
		assert.Equal(t, "main", aws.ToString(input.Targets[0].DestinationReference))
	})

	t.Run("should truncate descriptions over the service limit", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &codeCommitStub{output: createdOutput("1")}
		repo := ccRepo.NewCodeCommitReviewRepository(stub, "us-west-2")
		draft := entities.NewPullRequestDraft("app", "cve_finder", "main", strings.Repeat("x", 20000))

		// when
		_, err := repo.OpenPullRequest(context.Background(), draft)

		// then
		require.NoError(t, err)
		assert.Len(t, aws.ToString(stub.inputs[0].Description), 10240)
	})

	t.Run("should fail when the service rejects the request", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &codeCommitStub{err: errors.New("RepositoryDoesNotExistException")}
		repo := ccRepo.NewCodeCommitReviewRepository(stub, "us-west-2")

		// when
		_, err := repo.OpenPullRequest(context.Background(), entities.NewPullRequestDraft("app", "b", "main", ""))

		// then
		assert.ErrorContains(t, err, "RepositoryDoesNotExistException")
	})

	t.Run("should fail when no pull request is returned", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &codeCommitStub{output: &codecommit.CreatePullRequestOutput{}}
		repo := ccRepo.NewCodeCommitReviewRepository(stub, "us-west-2")

		// when
		_, err := repo.OpenPullRequest(context.Background(), entities.NewPullRequestDraft("app", "b", "main", ""))

		// then
		assert.Error(t, err)
	})
}
