package backport

import (
	"context"
	"fmt"
	"strings"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
	"ghpro.dev/ghpro/internal/github"
	"ghpro.dev/ghpro/internal/output"
)

// GitRepo is the slice of the git layer the applier drives
type GitRepo interface {
	BranchExists(name string) bool
	RemoteBranchExists(remote, name string) bool
	Fetch(ctx context.Context, remote, branch string) error
	CreateBranchAt(ctx context.Context, name, startPoint string) error
	CherryPick(ctx context.Context, sha string) error
	CherryPickMainline(ctx context.Context, sha string) error
	CherryPickInProgress(ctx context.Context) bool
	AmendMessage(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
}

// Result describes a completed backport
type Result struct {
	Branch  string
	Applied []string
	NewPR   *github.PullRequest
}

// Applier performs the backport workflow: fetch the PR's commits,
// cherry-pick them onto a fresh branch cut from the target, push, and open
// a PR that references the original.
//
// There is deliberately no conflict resolution and no rollback: a conflict
// halts with the failing SHA and the unapplied commits so the operator can
// resolve and continue by hand, and a partially-applied branch is left in
// place because that work is expensive to recompute.
type Applier struct {
	Client github.Client
	Git    GitRepo
	Remote string
	Splog  *output.Splog
}

// Apply backports prNumber onto target. The returned error is a
// *CherryPickConflictError when a cherry-pick stopped on a conflict.
func (a *Applier) Apply(ctx context.Context, target string, prNumber int) (*Result, error) {
	pr, err := a.Client.GetPullRequest(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	if !pr.Merged {
		return nil, ghproerrors.NewPRNotFoundError(prNumber, "not merged, nothing to backport")
	}

	startPoint, err := a.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	commits, err := a.Client.ListPullRequestCommits(ctx, prNumber)
	if err != nil {
		return nil, err
	}

	workBranch := BranchName(prNumber, target)
	if err := a.Git.CreateBranchAt(ctx, workBranch, startPoint); err != nil {
		return nil, err
	}
	a.Splog.Info("Created branch %s from %s", workBranch, startPoint)

	applied, err := a.cherryPickAll(ctx, pr, commits)
	if err != nil {
		return nil, err
	}

	if err := a.Git.Push(ctx, a.Remote, workBranch); err != nil {
		return nil, err
	}
	a.Splog.Info("Pushed %s to %s", workBranch, a.Remote)

	newPR, err := a.Client.CreatePullRequest(ctx, github.CreatePROptions{
		Title: fmt.Sprintf("Backport PR #%d: %s", pr.Number, pr.Title),
		Head:  workBranch,
		Base:  target,
		Body:  backportBody(pr, target),
	})
	if err != nil {
		return nil, err
	}

	return &Result{Branch: workBranch, Applied: applied, NewPR: newPR}, nil
}

// resolveTarget verifies the target branch exists and picks the start point
// for the work branch, preferring a freshly fetched remote-tracking ref.
func (a *Applier) resolveTarget(ctx context.Context, target string) (string, error) {
	if a.Git.RemoteBranchExists(a.Remote, target) {
		// A stale tracking ref still works as a start point
		if err := a.Git.Fetch(ctx, a.Remote, target); err != nil {
			a.Splog.Warn("Could not fetch %s/%s, using the local tracking ref", a.Remote, target)
		}
		return a.Remote + "/" + target, nil
	}
	if a.Git.BranchExists(target) {
		return target, nil
	}
	return "", ghproerrors.NewBranchNotFoundError(target)
}

// cherryPickAll applies the PR's commits oldest first, so later commits'
// conflict resolution sees earlier commits already in place. A PR with an
// empty commit list (squashed history no longer reachable) falls back to a
// mainline pick of the merge commit.
func (a *Applier) cherryPickAll(ctx context.Context, pr *github.PullRequest, commits []github.Commit) ([]string, error) {
	if len(commits) == 0 {
		if pr.MergeCommitSHA == "" {
			return nil, ghproerrors.NewPRNotFoundError(pr.Number, "has no commits and no merge commit")
		}
		a.Splog.Info("Cherry-picking merge commit %.8s (mainline)", pr.MergeCommitSHA)
		if err := a.Git.CherryPickMainline(ctx, pr.MergeCommitSHA); err != nil {
			return nil, a.conflictOr(ctx, err, pr.MergeCommitSHA, nil)
		}

		// A mainline pick takes the merge commit's message; rewrite it so
		// the branch history names the PR it came from
		message := fmt.Sprintf("Backport PR #%d: %s", pr.Number, pr.Title)
		if pr.Body != "" {
			message += "\n\n" + sanitizeDescription(pr.Body)
		}
		if err := a.Git.AmendMessage(ctx, message); err != nil {
			return nil, err
		}
		return []string{pr.MergeCommitSHA}, nil
	}

	applied := make([]string, 0, len(commits))
	for i, commit := range commits {
		a.Splog.Info("Cherry-picking %.8s (%d of %d)", commit.SHA, i+1, len(commits))
		if err := a.Git.CherryPick(ctx, commit.SHA); err != nil {
			remaining := make([]string, 0, len(commits)-i-1)
			for _, c := range commits[i+1:] {
				remaining = append(remaining, c.SHA)
			}
			return nil, a.conflictOr(ctx, err, commit.SHA, remaining)
		}
		applied = append(applied, commit.SHA)
	}

	return applied, nil
}

// conflictOr converts a failed cherry-pick into a conflict error when the
// repository shows a cherry-pick waiting for resolution; other failures
// propagate unchanged.
func (a *Applier) conflictOr(ctx context.Context, err error, sha string, remaining []string) error {
	if a.Git.CherryPickInProgress(ctx) {
		return ghproerrors.NewCherryPickConflictError(sha, remaining)
	}
	return err
}

// backportBody builds the new PR's description, linking back to the
// original. Mentions and issue references are defused so the backport does
// not ping people or cross-link issues a second time.
func backportBody(pr *github.PullRequest, target string) string {
	body := fmt.Sprintf("Backport of #%d to `%s`.", pr.Number, target)
	if pr.Body != "" {
		body += "\n\n---\n\n" + sanitizeDescription(pr.Body)
	}
	return body
}

var mentionReplacer = strings.NewReplacer("@", "@⁠", "#", "#⁠")

// sanitizeDescription inserts word joiners after @ and # so GitHub does not
// treat them as mentions or references
func sanitizeDescription(body string) string {
	return mentionReplacer.Replace(body)
}
