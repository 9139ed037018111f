//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// CloneCall records a single invocation of Clone.
type CloneCall struct {
	RemoteURL      string
	LocalPath      string
	CredentialPath string
}

// CommitCall records a single invocation of WriteManifestAndCommit.
type CommitCall struct {
	LocalPath string
	Branch    string
	Change    entities.ManifestChange
}

// SpyVersionControlRepository implements repositories.VersionControlRepository as a
// configurable spy. Its zero value succeeds at everything.
type SpyVersionControlRepository struct {
	// --- Clone ---
	CloneErr   error
	CloneCalls []CloneCall

	// --- ReadFile ---
	Files     map[string]string // path -> content
	ReadPaths []string

	// --- CreateAndCheckoutBranch ---
	BranchFails bool
	Branches    []string

	// --- WriteManifestAndCommit ---
	CommitFails bool
	Commits     []CommitCall
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) Clone(
	_ context.Context,
	remoteURL, localPath, credentialPath string,
) error {
	s.CloneCalls = append(s.CloneCalls, CloneCall{
		RemoteURL:      remoteURL,
		LocalPath:      localPath,
		CredentialPath: credentialPath,
	})
	return s.CloneErr
}

func (s *SpyVersionControlRepository) ReadFile(_, path string) string {
	s.ReadPaths = append(s.ReadPaths, path)
	return s.Files[path]
}

func (s *SpyVersionControlRepository) CreateAndCheckoutBranch(_ context.Context, _, branch string) bool {
	s.Branches = append(s.Branches, branch)
	return !s.BranchFails
}

func (s *SpyVersionControlRepository) WriteManifestAndCommit(
	_ context.Context,
	localPath, branch string,
	change entities.ManifestChange,
) bool {
	s.Commits = append(s.Commits, CommitCall{LocalPath: localPath, Branch: branch, Change: change})
	return !s.CommitFails
}
