package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	logger "github.com/sirupsen/logrus"
	cryptossh "golang.org/x/crypto/ssh"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

const (
	AuthorName  = "CVE Finder"
	AuthorEmail = "cve_finder@example.com"

	remoteName     = "origin"
	defaultSSHUser = "git"
	fileMode       = 0o644
)

var errEmptyManifest = errors.New("refusing to commit an empty manifest")

// GoGitVersionControlRepository implements repositories.VersionControlRepository
// with go-git, without shelling out to a git binary. The SSH auth used to clone a
// working copy is reused when pushing from it.
type GoGitVersionControlRepository struct {
	mu    sync.Mutex
	auths map[string]transport.AuthMethod
	now   func() time.Time
}

// NewGoGitVersionControlRepository creates the go-git driver.
func NewGoGitVersionControlRepository() *GoGitVersionControlRepository {
	return &GoGitVersionControlRepository{
		auths: make(map[string]transport.AuthMethod),
		now:   time.Now,
	}
}

// Clone replaces localPath with a fresh clone of remoteURL.
func (it *GoGitVersionControlRepository) Clone(
	ctx context.Context,
	remoteURL, localPath, credentialPath string,
) error {
	auth, err := sshAuth(remoteURL, credentialPath)
	if err != nil {
		return &entities.CloneError{RemoteURL: remoteURL, Err: err}
	}

	if removeErr := os.RemoveAll(localPath); removeErr != nil {
		return &entities.CloneError{RemoteURL: remoteURL, Err: fmt.Errorf("clean %s: %w", localPath, removeErr)}
	}

	if _, err = gogit.PlainCloneContext(ctx, localPath, false, &gogit.CloneOptions{
		URL:        remoteURL,
		Auth:       auth,
		RemoteName: remoteName,
	}); err != nil {
		return &entities.CloneError{RemoteURL: remoteURL, Err: err}
	}

	it.mu.Lock()
	it.auths[localPath] = auth
	it.mu.Unlock()

	logger.Infof("[git] Repository successfully cloned into %s", localPath)
	return nil
}

// ReadFile returns the content of a working copy file, or "" when it cannot be read.
func (it *GoGitVersionControlRepository) ReadFile(localPath, path string) string {
	content, err := os.ReadFile(filepath.Join(localPath, path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warnf("[git] File not found: %s", path)
		} else {
			logger.Warnf("[git] An error occurred while reading %s: %v", path, err)
		}
		return ""
	}
	return string(content)
}

// CreateAndCheckoutBranch creates the branch from HEAD and checks it out. A branch
// left over from a previous attempt is checked out as is.
func (it *GoGitVersionControlRepository) CreateAndCheckoutBranch(
	_ context.Context,
	localPath, branch string,
) bool {
	if err := checkoutBranch(localPath, branch); err != nil {
		logger.Errorf("[git] %v", &entities.BranchCreationError{Branch: branch, Err: err})
		return false
	}

	logger.Infof("[git] Branch %q created and checked out", branch)
	return true
}

// WriteManifestAndCommit writes the manifest and extra files, commits them as the
// CVE Finder author and pushes the branch to origin.
func (it *GoGitVersionControlRepository) WriteManifestAndCommit(
	ctx context.Context,
	localPath, branch string,
	change entities.ManifestChange,
) bool {
	if strings.TrimSpace(change.Text) == "" {
		logger.Errorf("[git] %v", errEmptyManifest)
		return false
	}

	if err := it.commitAndPush(ctx, localPath, branch, change); err != nil {
		logger.Errorf("[git] Failed to update %s on branch %q: %v", change.Path, branch, err)
		return false
	}

	logger.Infof("[git] %s updated on branch %q", change.Path, branch)
	return true
}

func (it *GoGitVersionControlRepository) commitAndPush(
	ctx context.Context,
	localPath, branch string,
	change entities.ManifestChange,
) error {
	repo, err := gogit.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	files := map[string]string{change.Path: change.Text + "\n"}
	for path, content := range change.Extra {
		files[path] = content
	}
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if writeErr := os.WriteFile(filepath.Join(localPath, path), []byte(files[path]), fileMode); writeErr != nil {
			return fmt.Errorf("write %s: %w", path, writeErr)
		}
		if _, addErr := worktree.Add(path); addErr != nil {
			return fmt.Errorf("stage %s: %w", path, addErr)
		}
	}

	message := change.Message
	if message == "" {
		message = entities.ManifestCommitMessage
	}
	if _, err = worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: AuthorName, Email: AuthorEmail, When: it.now()},
	}); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	it.mu.Lock()
	auth := it.auths[localPath]
	it.mu.Unlock()

	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%[1]s:refs/heads/%[1]s", branch))
	err = repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push %s: %w", branch, err)
	}
	return nil
}

func checkoutBranch(localPath, branch string) error {
	repo, err := gogit.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	_, refErr := repo.Reference(ref, false)
	create := errors.Is(refErr, plumbing.ErrReferenceNotFound)
	if refErr != nil && !create {
		return refErr
	}

	return worktree.Checkout(&gogit.CheckoutOptions{Branch: ref, Create: create})
}

// sshAuth loads the private key for SSH remotes. Host keys are not verified, the
// same as StrictHostKeyChecking=no. Non-SSH remotes and an empty path get no auth.
func sshAuth(remoteURL, keyPath string) (transport.AuthMethod, error) {
	if keyPath == "" {
		return nil, nil //nolint:nilnil // anonymous access
	}

	endpoint, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}
	if endpoint.Protocol != "ssh" {
		return nil, nil //nolint:nilnil // key only applies to SSH remotes
	}

	user := endpoint.User
	if user == "" {
		user = defaultSSHUser
	}

	keys, err := gitssh.NewPublicKeysFromFile(user, keyPath, "")
	if err != nil {
		return nil, fmt.Errorf("load SSH key %s: %w", keyPath, err)
	}
	keys.HostKeyCallback = cryptossh.InsecureIgnoreHostKey() //nolint:gosec // CodeCommit host keys are not pinned
	return keys, nil
}
