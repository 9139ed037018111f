package codecommit

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codecommit"
	"github.com/aws/aws-sdk-go-v2/service/codecommit/types"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/awsconfig"
)

const (
	hostName = "codecommit"

	// maxDescriptionLength is the CodeCommit limit for pull request descriptions.
	maxDescriptionLength = 10240

	consoleURLFmt = "https://%[1]s.console.aws.amazon.com/codesuite/codecommit/repositories/%[2]s/pull-requests/%[3]s/details?region=%[1]s"
)

var errMissingPullRequest = errors.New("codecommit returned no pull request")

// API is the subset of the CodeCommit client used by the review repository.
type API interface {
	CreatePullRequest(
		ctx context.Context, params *codecommit.CreatePullRequestInput, optFns ...func(*codecommit.Options),
	) (*codecommit.CreatePullRequestOutput, error)
}

// CodeCommitReviewRepository opens pull requests on AWS CodeCommit.
type CodeCommitReviewRepository struct {
	client API
	region string
}

// NewCodeCommitReviewRepository creates a repository over an existing client.
func NewCodeCommitReviewRepository(client API, region string) *CodeCommitReviewRepository {
	return &CodeCommitReviewRepository{client: client, region: region}
}

// NewReviewRepository builds the repository from review settings.
func NewReviewRepository(ctx context.Context, cfg entities.ReviewConfig) (repositories.ReviewRepository, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client := codecommit.NewFromConfig(awsCfg, func(o *codecommit.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewCodeCommitReviewRepository(client, cfg.Region), nil
}

func (it *CodeCommitReviewRepository) Name() string { return hostName }

// OpenPullRequest creates a single-target pull request from the draft branches.
func (it *CodeCommitReviewRepository) OpenPullRequest(
	ctx context.Context,
	draft entities.PullRequestDraft,
) (*entities.PullRequest, error) {
	description := draft.Description
	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength]
	}

	output, err := it.client.CreatePullRequest(ctx, &codecommit.CreatePullRequestInput{
		Title:       aws.String(draft.Title),
		Description: aws.String(description),
		Targets: []types.Target{
			{
				RepositoryName:       aws.String(draft.RepositoryName),
				SourceReference:      aws.String(draft.SourceBranch),
				DestinationReference: aws.String(draft.DestinationBranch),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	if output.PullRequest == nil {
		return nil, errMissingPullRequest
	}

	pullRequestID := aws.ToString(output.PullRequest.PullRequestId)
	number, convErr := strconv.Atoi(pullRequestID)
	if convErr != nil {
		return nil, fmt.Errorf("unexpected pull request id %q: %w", pullRequestID, convErr)
	}

	return &entities.PullRequest{
		ID:     number,
		Title:  aws.ToString(output.PullRequest.Title),
		URL:    fmt.Sprintf(consoleURLFmt, it.region, draft.RepositoryName, pullRequestID),
		Status: string(output.PullRequest.PullRequestStatus),
	}, nil
}
