package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/metrics"
	infraRepos "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories"
)

// Remediate is the interface for the remediation command.
type Remediate interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts RemediateOptions,
	) (*entities.RemediationResult, error)
}

// RemediateOptions holds runtime options for a single remediation run.
type RemediateOptions struct {
	RepositoryName string // If empty, settings.Application.Name is used
	DryRun         bool   // Build and log the prompt, but never call the model
	Verbose        bool
}

// RemediateCommand orchestrates a remediation run:
// read findings -> clone -> prompt -> generate until a patch applies -> pull request.
type RemediateCommand struct {
	storeRegistry  *infraRepos.StoreRegistry
	modelRegistry  *infraRepos.ModelRegistry
	reviewRegistry *infraRepos.ReviewRegistry
	versionControl repositories.VersionControlRepository
}

// NewRemediateCommand creates a new RemediateCommand with the given registries.
func NewRemediateCommand(
	storeRegistry *infraRepos.StoreRegistry,
	modelRegistry *infraRepos.ModelRegistry,
	reviewRegistry *infraRepos.ReviewRegistry,
	versionControl repositories.VersionControlRepository,
) *RemediateCommand {
	return &RemediateCommand{
		storeRegistry:  storeRegistry,
		modelRegistry:  modelRegistry,
		reviewRegistry: reviewRegistry,
		versionControl: versionControl,
	}
}

// Execute remediates one repository. A nil result with a nil error means there were
// no findings to act on.
func (it *RemediateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RemediateOptions,
) (*entities.RemediationResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	name := opts.RepositoryName
	if name == "" {
		name = settings.Application.Name
	}

	started := time.Now()
	defer func() {
		metrics.RemediationDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	}()

	store, err := it.storeRegistry.Get(ctx, settings.Store.Type, settings.Store)
	if err != nil {
		return nil, err
	}

	findings, err := store.Get(ctx, name)
	if err != nil {
		logger.Errorf("[remediate] Failed to read findings of %q: %v", name, err)
		return nil, nil //nolint:nilnil // unreadable findings are treated as no findings
	}
	if findings == nil {
		logger.Infof("[remediate] No findings recorded for %q, nothing to do", name)
		return nil, nil //nolint:nilnil // nothing to remediate
	}

	result := &entities.RemediationResult{Repository: name, Branch: settings.Repository.Branch}
	localPath := settings.LocalPathFor(name)

	if err = it.versionControl.Clone(
		ctx, settings.RemoteURLFor(name), localPath, settings.Repository.KeyPath,
	); err != nil {
		return result, err
	}

	manifest := it.versionControl.ReadFile(localPath, settings.Repository.Manifest)
	prompt := entities.FullPrompt(findings.Vulnerabilities, manifest, name)

	if opts.DryRun {
		logger.Infof("[remediate] [dry-run] Would invoke %s with prompt:\n%s", settings.Model.Type, prompt)
		return result, nil
	}

	model, err := it.modelRegistry.Get(ctx, settings.Model.Type, settings.Model)
	if err != nil {
		return result, err
	}

	change := entities.ManifestChange{
		Path:    settings.Repository.Manifest,
		Message: entities.ManifestCommitMessage,
		Extra:   it.changelogUpdate(localPath, findings.Vulnerabilities),
	}
	if err = it.generatePatch(ctx, model, NewRetryPolicy(settings.Retry), prompt, localPath, change, result); err != nil {
		return result, err
	}

	it.openPullRequest(ctx, settings, result)
	return result, nil
}

// generatePatch invokes the model until its completion carries an applicable manifest,
// then commits and pushes it.
func (it *RemediateCommand) generatePatch(
	ctx context.Context,
	model repositories.ModelRepository,
	policy RetryPolicy,
	prompt, localPath string,
	change entities.ManifestChange,
	result *entities.RemediationResult,
) error {
	policy.reset()

	for {
		if policy.exhausted(result.Attempts) {
			return fmt.Errorf("%w: no applicable patch after %d attempts", entities.ErrRetriesExhausted, result.Attempts)
		}
		if result.Attempts > 0 {
			if err := it.wait(ctx, policy); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		completion, err := model.Invoke(ctx, prompt)
		result.Attempts++
		if err != nil {
			metrics.ModelInvocationsTotal.WithLabelValues(model.Name(), "error").Inc()
			return fmt.Errorf("model invocation failed: %w", err)
		}
		metrics.ModelInvocationsTotal.WithLabelValues(model.Name(), "success").Inc()
		result.Completion = completion
		logger.Debugf("[remediate] Completion #%d:\n%s", result.Attempts, completion)

		result.BranchAttempts++
		it.versionControl.CreateAndCheckoutBranch(ctx, localPath, result.Branch)

		patch, found := entities.ExtractManifestPatch(completion)
		if !found {
			metrics.ExtractionFailuresTotal.WithLabelValues(result.Repository).Inc()
			logger.Warnf("[remediate] Attempt #%d: %v", result.Attempts, entities.ErrExtractionNotFound)
			continue
		}

		change.Text = patch
		if !it.versionControl.WriteManifestAndCommit(ctx, localPath, result.Branch, change) {
			return fmt.Errorf("failed to commit the patched %s on branch %q", change.Path, result.Branch)
		}
		result.Committed = true
		logger.Infof("[remediate] %s updated on branch %q after %d attempt(s)", change.Path, result.Branch, result.Attempts)
		return nil
	}
}

func (it *RemediateCommand) wait(ctx context.Context, policy RetryPolicy) error {
	delay, ok := policy.nextDelay()
	if !ok {
		return fmt.Errorf("%w: back-off gave up", entities.ErrRetriesExhausted)
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// changelogUpdate returns the changelog to commit alongside the manifest, when the
// repository keeps one with an Unreleased release.
func (it *RemediateCommand) changelogUpdate(
	localPath string,
	findings []entities.VulnerabilityRecord,
) map[string]string {
	content := it.versionControl.ReadFile(localPath, entities.ChangelogFile)
	if content == "" {
		return nil
	}

	updated, ok := entities.AddChangelogEntries(
		content, []string{entities.RemediationChangelogEntry(findings)},
	)
	if !ok {
		logger.Debugf("[remediate] %s has no Unreleased release, leaving it untouched", entities.ChangelogFile)
		return nil
	}
	return map[string]string{entities.ChangelogFile: updated}
}

// openPullRequest is best-effort: failures are logged and recorded on the result.
func (it *RemediateCommand) openPullRequest(
	ctx context.Context,
	settings *entities.Settings,
	result *entities.RemediationResult,
) {
	draft := entities.NewPullRequestDraft(
		result.Repository, result.Branch, settings.Repository.TargetBranch, result.Completion,
	)
	draft.Organization = settings.Review.Organization

	review, err := it.reviewRegistry.Get(ctx, settings.Review.Type, settings.Review)
	if err == nil {
		result.PullRequest, err = review.OpenPullRequest(ctx, draft)
	}
	if err != nil {
		var prErr *entities.PullRequestCreationError
		if !errors.As(err, &prErr) {
			err = &entities.PullRequestCreationError{Repository: result.Repository, Err: err}
		}
		result.ReviewErr = err
		metrics.PullRequestsTotal.WithLabelValues(settings.Review.Type, "failed").Inc()
		logger.Errorf("[remediate] Error creating pull request: %v", err)
		return
	}

	metrics.PullRequestsTotal.WithLabelValues(review.Name(), "created").Inc()
	logger.Infof("[remediate] Pull Request Created: %s (%s)", result.PullRequest.Title, result.PullRequest.URL)
}
