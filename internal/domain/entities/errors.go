package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEvent is returned when a scanner event is not a JSON object.
	ErrMalformedEvent = errors.New("malformed scanner event")

	// ErrExtractionNotFound is reported when a completion has no updated manifest block.
	ErrExtractionNotFound = errors.New("updated requirements.txt block not found")

	// ErrRetriesExhausted is returned when the retry policy stops before a patch was applied.
	ErrRetriesExhausted = errors.New("model did not produce an applicable patch")
)

// MalformedEventError describes why a raw event could not be normalized.
type MalformedEventError struct {
	Got string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("%s: expected a JSON object, got %s", ErrMalformedEvent, e.Got)
}

func (e *MalformedEventError) Unwrap() error { return ErrMalformedEvent }

// StoreAccessError wraps any failure of the aggregation store.
type StoreAccessError struct {
	Err error
}

func (e *StoreAccessError) Error() string { return "aggregation store: " + e.Err.Error() }

func (e *StoreAccessError) Unwrap() error { return e.Err }

// CloneError is fatal to a remediation cycle.
type CloneError struct {
	RemoteURL string
	Err       error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone %s: %v", e.RemoteURL, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// BranchCreationError is logged and swallowed by the version-control driver.
type BranchCreationError struct {
	Branch string
	Err    error
}

func (e *BranchCreationError) Error() string {
	return fmt.Sprintf("failed to create and checkout branch %q: %v", e.Branch, e.Err)
}

func (e *BranchCreationError) Unwrap() error { return e.Err }

// PullRequestCreationError is recorded on the remediation result and never fails the run.
type PullRequestCreationError struct {
	Repository string
	Err        error
}

func (e *PullRequestCreationError) Error() string {
	return fmt.Sprintf("failed to create pull request for %s: %v", e.Repository, e.Err)
}

func (e *PullRequestCreationError) Unwrap() error { return e.Err }
