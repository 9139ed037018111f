package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

// PullRequestTitle is the fixed title of every remediation pull request.
const PullRequestTitle = "CVE Finder, please take a look and update with the following recommendations"

// PullRequestDraft is built once per applied patch and handed to the review host.
type PullRequestDraft struct {
	RepositoryName    string
	Organization      string // only used by hosts that namespace repositories
	SourceBranch      string
	DestinationBranch string
	Title             string
	Description       string
}

// NewPullRequestDraft describes the remediation of repositoryName with the model's
// completion as description.
func NewPullRequestDraft(repositoryName, sourceBranch, destinationBranch, completion string) PullRequestDraft {
	return PullRequestDraft{
		RepositoryName:    repositoryName,
		SourceBranch:      sourceBranch,
		DestinationBranch: destinationBranch,
		Title:             PullRequestTitle,
		Description:       completion,
	}
}
