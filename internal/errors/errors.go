// Package errors provides sentinel errors and custom error types shared by
// the ghpro command-line tools. Use errors.Is() and errors.As() to check for
// specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for common conditions
var (
	// ErrAuthentication indicates missing or rejected GitHub credentials
	ErrAuthentication = errors.New("github authentication failed")

	// ErrRateLimit indicates the GitHub API quota is exhausted
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNotFound indicates a repository, pull request or milestone does not exist
	ErrNotFound = errors.New("not found")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrConflict indicates that a cherry-pick stopped on a conflict
	ErrConflict = errors.New("cherry-pick conflict")

	// ErrNetwork indicates a transient connectivity failure
	ErrNetwork = errors.New("network failure")
)

// AuthenticationError reports rejected or missing credentials
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("github authentication failed: %s", e.Reason)
	}
	return "github authentication failed"
}

// Is returns true if the target error is ErrAuthentication
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(reason string) *AuthenticationError {
	return &AuthenticationError{Reason: reason}
}

// RateLimitError reports an exhausted API quota, with the remote's
// retry-after hint when one was provided.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("github rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "github rate limit exceeded"
}

// Is returns true if the target error is ErrRateLimit
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimit
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}

// NotFoundError reports a missing remote entity (repository, milestone, ...)
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

// Is returns true if the target error is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// PRNotFoundError reports a pull request that is missing or not usable for
// backporting because it was never merged.
type PRNotFoundError struct {
	Number int
	Reason string
}

func (e *PRNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pull request #%d: %s", e.Number, e.Reason)
	}
	return fmt.Sprintf("pull request #%d not found", e.Number)
}

// Is returns true if the target error is ErrNotFound
func (e *PRNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewPRNotFoundError creates a new PRNotFoundError
func NewPRNotFoundError(number int, reason string) *PRNotFoundError {
	return &PRNotFoundError{Number: number, Reason: reason}
}

// BranchNotFoundError reports a branch that exists neither locally nor on the
// configured remote.
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// CherryPickConflictError reports the commit a cherry-pick run stopped on and
// the commits that were never attempted. The working tree is left in the
// conflicted state for the operator to resolve.
type CherryPickConflictError struct {
	SHA       string
	Remaining []string
}

func (e *CherryPickConflictError) Error() string {
	msg := fmt.Sprintf("cherry-pick of %s stopped on a conflict", shortSHA(e.SHA))
	if len(e.Remaining) > 0 {
		shorts := make([]string, len(e.Remaining))
		for i, sha := range e.Remaining {
			shorts[i] = shortSHA(sha)
		}
		msg += fmt.Sprintf("; not yet applied: %s", strings.Join(shorts, ", "))
	}
	return msg
}

// Is returns true if the target error is ErrConflict
func (e *CherryPickConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewCherryPickConflictError creates a new CherryPickConflictError
func NewCherryPickConflictError(sha string, remaining []string) *CherryPickConflictError {
	return &CherryPickConflictError{SHA: sha, Remaining: remaining}
}

// NetworkError wraps a transient transport failure
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrNetwork
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
