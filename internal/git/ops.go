package git

import (
	"context"
	"fmt"
)

// CurrentBranch returns the name of the checked-out branch
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	name, err := r.runner.Run(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return name, nil
}

// Fetch updates the remote-tracking ref for a single branch. Failures are
// reported but a stale tracking ref is still usable as a starting point, so
// callers may treat them as non-fatal.
func (r *Repo) Fetch(ctx context.Context, remote, branch string) error {
	_, err := r.runner.Run(ctx, "fetch", remote, branch)
	if err != nil {
		return fmt.Errorf("failed to fetch %s from %s: %w", branch, remote, err)
	}
	return nil
}

// CreateBranchAt creates a branch at startPoint and checks it out
func (r *Repo) CreateBranchAt(ctx context.Context, name, startPoint string) error {
	_, err := r.runner.Run(ctx, "checkout", "-b", name, startPoint)
	if err != nil {
		return fmt.Errorf("failed to create branch %s at %s: %w", name, startPoint, err)
	}
	return nil
}

// Checkout checks out an existing branch
func (r *Repo) Checkout(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "checkout", name)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// CherryPick applies a single commit onto the current branch. GIT_EDITOR is
// forced off so the default message is taken without opening an editor.
func (r *Repo) CherryPick(ctx context.Context, sha string) error {
	_, err := r.runner.runWithEnv(ctx, []string{"GIT_EDITOR=true"}, "cherry-pick", sha)
	return err
}

// CherryPickMainline applies a merge commit relative to its first parent,
// used when a PR only has a merge SHA to go on.
func (r *Repo) CherryPickMainline(ctx context.Context, sha string) error {
	_, err := r.runner.runWithEnv(ctx, []string{"GIT_EDITOR=true"}, "cherry-pick", "-m", "1", sha)
	return err
}

// CherryPickInProgress reports whether a cherry-pick stopped mid-way,
// which after a failed CherryPick means a conflict is waiting for the
// operator.
func (r *Repo) CherryPickInProgress(ctx context.Context) bool {
	_, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", "CHERRY_PICK_HEAD")
	return err == nil
}

// AmendMessage rewrites the message of the commit at HEAD
func (r *Repo) AmendMessage(ctx context.Context, message string) error {
	_, err := r.runner.Run(ctx, "commit", "--amend", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to amend commit message: %w", err)
	}
	return nil
}

// Push pushes a branch to the remote and sets it up to track
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	_, err := r.runner.Run(ctx, "push", "-u", remote, branch)
	if err != nil {
		return fmt.Errorf("failed to push branch %s to %s: %w", branch, remote, err)
	}
	return nil
}

// LogOneline returns `git log --oneline` output for a revision range,
// e.g. "v4.2.0..4.x". Used to detect already-applied backports.
func (r *Repo) LogOneline(ctx context.Context, revRange string) (string, error) {
	out, err := r.runner.Run(ctx, "log", "--oneline", revRange)
	if err != nil {
		return "", fmt.Errorf("failed to read log for %s: %w", revRange, err)
	}
	return out, nil
}

// Describe returns the most recent tag reachable from rev
func (r *Repo) Describe(ctx context.Context, rev string) (string, error) {
	out, err := r.runner.Run(ctx, "describe", rev, "--abbrev=0")
	if err != nil {
		return "", fmt.Errorf("failed to describe %s: %w", rev, err)
	}
	return out, nil
}
