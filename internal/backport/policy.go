package backport

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"ghpro.dev/ghpro/internal/config"
	"ghpro.dev/ghpro/internal/github"
)

// CompletionPolicy decides whether a pull request has already been
// backported to a branch. The rule is convention-driven and varies by
// repository, so it is injected rather than hard-coded.
type CompletionPolicy interface {
	Applied(ctx context.Context, pr *github.PullRequest, branch string) (bool, error)
}

// LabelPolicy treats a `backported-<branch>` label as the completion marker.
// This is the default.
type LabelPolicy struct{}

// Applied reports whether the PR carries an applied marker for branch
func (LabelPolicy) Applied(_ context.Context, pr *github.PullRequest, branch string) (bool, error) {
	for _, mark := range ParseLabels(pr.Labels) {
		if mark.Status == StatusApplied && (mark.Branch == branch || mark.Branch == "") {
			return true, nil
		}
	}
	return false, nil
}

// commentPattern matches completion comments like "backported to 4.x" or
// "backport to 4.x done". Present-tense requests ("needs a backport to 4.x")
// must not count.
func commentPattern(branch string) *regexp.Regexp {
	b := regexp.QuoteMeta(branch)
	return regexp.MustCompile(`(?i)backported\s+to\s+` + b + `|backport\s+to\s+` + b + `\s+done`)
}

// CommentPolicy scans issue comments for a completion note naming the branch
type CommentPolicy struct {
	Client github.Client
}

// Applied reports whether any comment on the PR records the backport
func (p CommentPolicy) Applied(ctx context.Context, pr *github.PullRequest, branch string) (bool, error) {
	comments, err := p.Client.ListIssueComments(ctx, pr.Number)
	if err != nil {
		return false, err
	}

	pattern := commentPattern(branch)
	for _, comment := range comments {
		if pattern.MatchString(comment.Body) {
			return true, nil
		}
	}
	return false, nil
}

// LogReader is the slice of the git layer the log policy needs
type LogReader interface {
	LogOneline(ctx context.Context, revRange string) (string, error)
	Describe(ctx context.Context, rev string) (string, error)
}

// backportSubjectPattern finds PR numbers in backport commit subjects,
// e.g. "Backport PR #1234: fix the thing" or "Merge pull request #1234".
var backportSubjectPattern = regexp.MustCompile(`(?:[Bb]ackport|[Mm]erge).*?#?(\d+)`)

// LogPolicy inspects the target branch's history: a PR counts as backported
// when a commit subject since SinceTag references it. SinceTag defaults to
// the most recent tag on the branch.
type LogPolicy struct {
	Log      LogReader
	SinceTag string
}

// Applied reports whether the branch log already references the PR
func (p LogPolicy) Applied(ctx context.Context, pr *github.PullRequest, branch string) (bool, error) {
	since := p.SinceTag
	if since == "" {
		tag, err := p.Log.Describe(ctx, branch)
		if err != nil {
			return false, err
		}
		since = tag
	}

	log, err := p.Log.LogOneline(ctx, since+".."+branch)
	if err != nil {
		return false, err
	}

	for _, m := range backportSubjectPattern.FindAllStringSubmatch(log, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n == pr.Number {
			return true, nil
		}
	}
	return false, nil
}

// NewPolicy builds the configured completion policy. log is only needed for
// the "log" policy and may be nil otherwise.
func NewPolicy(name string, client github.Client, log LogReader, sinceTag string) (CompletionPolicy, error) {
	switch name {
	case "", config.DefaultCompletionPolicy:
		return LabelPolicy{}, nil
	case "comments":
		return CommentPolicy{Client: client}, nil
	case "log":
		if log == nil {
			return nil, fmt.Errorf("completion policy %q needs a local git clone", name)
		}
		return LogPolicy{Log: log, SinceTag: sinceTag}, nil
	}
	return nil, fmt.Errorf("unknown completion policy %q", name)
}
