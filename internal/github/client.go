package github

import (
	"context"
	"time"
)

// IssueState filters issue listings
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// IssueFilters narrows an issue listing. Zero values mean "no filter",
// except Milestone which is always required by the callers here.
type IssueFilters struct {
	// Milestone is the milestone number (not title) to filter by
	Milestone int
	// State is StateOpen, StateClosed or StateAll (default StateAll)
	State string
	// Labels requires every named label to be present
	Labels []string
	// Since drops issues not updated at or after this time
	Since time.Time
}

// Client is an interface for GitHub API interactions, scoped to one
// repository. Implementations perform no caching and no automatic retry;
// callers decide whether to wait and resubmit on rate-limit errors.
type Client interface {
	// OwnerRepo returns the repository owner and name
	OwnerRepo() (owner, repo string)

	// GetMilestone finds a milestone by title (e.g. "4.3")
	GetMilestone(ctx context.Context, title string) (*Milestone, error)

	// ListIssues returns every issue and pull request matching the filters,
	// following pagination until exhausted
	ListIssues(ctx context.Context, filters IssueFilters) ([]Issue, error)

	// GetPullRequest fetches a single pull request record
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)

	// ListPullRequestCommits returns the PR's commits in API order, which is
	// chronological (oldest first)
	ListPullRequestCommits(ctx context.Context, number int) ([]Commit, error)

	// ListIssueComments returns all comments on an issue or pull request
	ListIssueComments(ctx context.Context, number int) ([]Comment, error)

	// CreatePullRequest opens a new pull request
	CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequest, error)
}
