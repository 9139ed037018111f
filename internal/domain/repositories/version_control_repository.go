package repositories

import (
	"context"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// VersionControlRepository clones a repository, prepares a branch and pushes a
// patched manifest. Only Clone fails loudly; the other operations log their errors
// and report a success flag.
type VersionControlRepository interface {
	// Clone replaces localPath with a fresh clone of remoteURL. An empty
	// credentialPath disables authentication. Failures are *entities.CloneError.
	Clone(ctx context.Context, remoteURL, localPath, credentialPath string) error

	// ReadFile returns the text of a file of the working copy, or "" when unreadable.
	ReadFile(localPath, path string) string

	// CreateAndCheckoutBranch creates the branch from HEAD (or reuses it) and checks it out.
	CreateAndCheckoutBranch(ctx context.Context, localPath, branch string) bool

	// WriteManifestAndCommit overwrites the manifest, commits it along with any
	// extra files and pushes the branch to origin. Empty text is never committed.
	WriteManifestAndCommit(ctx context.Context, localPath, branch string, change entities.ManifestChange) bool
}

