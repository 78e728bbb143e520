// Package testhelpers provides shared fakes and fixtures for tests.
package testhelpers

import (
	"context"
	"strconv"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
	"ghpro.dev/ghpro/internal/github"
)

// FakeGitHubClient implements github.Client from canned data
type FakeGitHubClient struct {
	Owner string
	Repo  string

	Milestones map[string]*github.Milestone
	Issues     map[int][]github.Issue // keyed by milestone number
	PRs        map[int]*github.PullRequest
	Commits    map[int][]github.Commit
	Comments   map[int][]github.Comment

	// CreatedPRs records every CreatePullRequest call
	CreatedPRs []github.CreatePROptions

	// Err, when set, is returned by every method
	Err error
}

// NewFakeGitHubClient creates an empty fake for owner/repo
func NewFakeGitHubClient(owner, repo string) *FakeGitHubClient {
	return &FakeGitHubClient{
		Owner:      owner,
		Repo:       repo,
		Milestones: make(map[string]*github.Milestone),
		Issues:     make(map[int][]github.Issue),
		PRs:        make(map[int]*github.PullRequest),
		Commits:    make(map[int][]github.Commit),
		Comments:   make(map[int][]github.Comment),
	}
}

// OwnerRepo returns the repository owner and name
func (f *FakeGitHubClient) OwnerRepo() (string, string) {
	return f.Owner, f.Repo
}

// GetMilestone finds a canned milestone by title
func (f *FakeGitHubClient) GetMilestone(_ context.Context, title string) (*github.Milestone, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if ms, ok := f.Milestones[title]; ok {
		return ms, nil
	}
	return nil, ghproerrors.NewNotFoundError("milestone", title)
}

// ListIssues returns canned issues for the filter's milestone, honoring the
// state filter
func (f *FakeGitHubClient) ListIssues(_ context.Context, filters github.IssueFilters) ([]github.Issue, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var out []github.Issue
	for _, issue := range f.Issues[filters.Milestone] {
		if filters.State == github.StateAll || filters.State == "" || issue.State == filters.State {
			out = append(out, issue)
		}
	}
	return out, nil
}

// GetPullRequest returns a canned pull request
func (f *FakeGitHubClient) GetPullRequest(_ context.Context, number int) (*github.PullRequest, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if pr, ok := f.PRs[number]; ok {
		return pr, nil
	}
	return nil, ghproerrors.NewPRNotFoundError(number, "")
}

// ListPullRequestCommits returns canned commits
func (f *FakeGitHubClient) ListPullRequestCommits(_ context.Context, number int) ([]github.Commit, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Commits[number], nil
}

// ListIssueComments returns canned comments
func (f *FakeGitHubClient) ListIssueComments(_ context.Context, number int) ([]github.Comment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Comments[number], nil
}

// CreatePullRequest records the call and returns a stub PR
func (f *FakeGitHubClient) CreatePullRequest(_ context.Context, opts github.CreatePROptions) (*github.PullRequest, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedPRs = append(f.CreatedPRs, opts)
	number := 9000 + len(f.CreatedPRs)
	return &github.PullRequest{
		Number:  number,
		Title:   opts.Title,
		Body:    opts.Body,
		State:   github.StateOpen,
		Base:    opts.Base,
		Head:    opts.Head,
		HTMLURL: "https://github.com/" + f.Owner + "/" + f.Repo + "/pull/" + strconv.Itoa(number),
	}, nil
}
