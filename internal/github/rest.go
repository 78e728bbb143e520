package github

import (
	"context"
	"fmt"
	"strconv"

	gogithub "github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
)

// listPageSize is the page size used for all paginated listings; 100 is the
// GitHub REST API maximum.
const listPageSize = 100

// RESTClient implements Client against the GitHub REST API
type RESTClient struct {
	client *gogithub.Client
	owner  string
	repo   string
	logger *zap.Logger
}

// NewRESTClient creates a RESTClient for owner/repo authenticated with token.
// An empty token fails immediately rather than issuing anonymous requests.
func NewRESTClient(ctx context.Context, owner, repo, token string, logger *zap.Logger) (*RESTClient, error) {
	if token == "" {
		return nil, ghproerrors.NewAuthenticationError("no token; set GITHUB_TOKEN or run `gh auth login`")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &RESTClient{
		client: gogithub.NewClient(tc),
		owner:  owner,
		repo:   repo,
		logger: logger,
	}, nil
}

// newRESTClientWithBaseURL is used by tests to point at a mock server
func newRESTClientWithBaseURL(client *gogithub.Client, owner, repo string) *RESTClient {
	return &RESTClient{client: client, owner: owner, repo: repo, logger: zap.NewNop()}
}

// OwnerRepo returns the repository owner and name
func (c *RESTClient) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// GetMilestone finds a milestone by title, scanning open and closed
// milestones across all pages
func (c *RESTClient) GetMilestone(ctx context.Context, title string) (*Milestone, error) {
	c.logger.Debug("github: list milestones", zap.String("title", title))
	opts := &gogithub.MilestoneListOptions{
		State:       StateAll,
		ListOptions: gogithub.ListOptions{PerPage: listPageSize},
	}

	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, classify(err, "repository", c.owner+"/"+c.repo)
		}

		for _, m := range milestones {
			if m.GetTitle() == title {
				return toMilestone(m), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return nil, ghproerrors.NewNotFoundError("milestone", title)
}

// ListIssues returns all issues and PRs matching the filters
func (c *RESTClient) ListIssues(ctx context.Context, filters IssueFilters) ([]Issue, error) {
	state := filters.State
	if state == "" {
		state = StateAll
	}
	c.logger.Debug("github: list issues",
		zap.Int("milestone", filters.Milestone),
		zap.String("state", state))

	opts := &gogithub.IssueListByRepoOptions{
		Milestone:   strconv.Itoa(filters.Milestone),
		State:       state,
		Labels:      filters.Labels,
		Since:       filters.Since,
		ListOptions: gogithub.ListOptions{PerPage: listPageSize},
	}

	var issues []Issue
	for {
		page, resp, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, classify(err, "repository", c.owner+"/"+c.repo)
		}

		for _, issue := range page {
			issues = append(issues, toIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}

// GetPullRequest fetches a single pull request record
func (c *RESTClient) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	c.logger.Debug("github: get pull request", zap.Int("number", number))
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, classify(err, "pull request", fmt.Sprintf("#%d", number))
	}
	return toPullRequest(pr), nil
}

// ListPullRequestCommits returns the PR's commits oldest first, the order the
// REST API serves them in
func (c *RESTClient) ListPullRequestCommits(ctx context.Context, number int) ([]Commit, error) {
	c.logger.Debug("github: list pull request commits", zap.Int("number", number))
	opts := &gogithub.ListOptions{PerPage: listPageSize}

	var commits []Commit
	for {
		page, resp, err := c.client.PullRequests.ListCommits(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, classify(err, "pull request", fmt.Sprintf("#%d", number))
		}

		for _, rc := range page {
			commits = append(commits, toCommit(rc))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ListIssueComments returns all comments on an issue or pull request
func (c *RESTClient) ListIssueComments(ctx context.Context, number int) ([]Comment, error) {
	c.logger.Debug("github: list issue comments", zap.Int("number", number))
	opts := &gogithub.IssueListCommentsOptions{
		ListOptions: gogithub.ListOptions{PerPage: listPageSize},
	}

	var comments []Comment
	for {
		page, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, classify(err, "issue", fmt.Sprintf("#%d", number))
		}

		for _, comment := range page {
			comments = append(comments, Comment{
				Author: comment.GetUser().GetLogin(),
				Body:   comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreatePullRequest opens a new pull request
func (c *RESTClient) CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequest, error) {
	c.logger.Debug("github: create pull request",
		zap.String("head", opts.Head),
		zap.String("base", opts.Base))
	pr := &gogithub.NewPullRequest{
		Title: gogithub.String(opts.Title),
		Head:  gogithub.String(opts.Head),
		Base:  gogithub.String(opts.Base),
		Draft: gogithub.Bool(opts.Draft),
	}

	if opts.Body != "" {
		pr.Body = gogithub.String(opts.Body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return nil, classify(err, "repository", c.owner+"/"+c.repo)
	}

	return toPullRequest(created), nil
}

// toIssue converts a go-github issue to an Issue record
func toIssue(issue *gogithub.Issue) Issue {
	rec := Issue{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		State:         issue.GetState(),
		Author:        issue.GetUser().GetLogin(),
		IsPullRequest: issue.IsPullRequest(),
	}

	if issue.Milestone != nil {
		rec.Milestone = issue.Milestone.GetTitle()
	}

	for _, label := range issue.Labels {
		rec.Labels = append(rec.Labels, label.GetName())
	}

	return rec
}

// toPullRequest converts a go-github pull request to a PullRequest record
func toPullRequest(pr *gogithub.PullRequest) *PullRequest {
	if pr == nil {
		return nil
	}

	rec := &PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		State:          pr.GetState(),
		Merged:         pr.GetMerged(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Author:         pr.GetUser().GetLogin(),
		Base:           pr.GetBase().GetRef(),
		Head:           pr.GetHead().GetRef(),
		HTMLURL:        pr.GetHTMLURL(),
	}

	if pr.MergedAt != nil {
		t := pr.MergedAt.Time
		rec.MergedAt = &t
		// Listings omit the merged flag but carry merged_at
		rec.Merged = true
	}

	if pr.Milestone != nil {
		rec.Milestone = pr.Milestone.GetTitle()
	}

	for _, label := range pr.Labels {
		rec.Labels = append(rec.Labels, label.GetName())
	}

	return rec
}

// toMilestone converts a go-github milestone to a Milestone record
func toMilestone(m *gogithub.Milestone) *Milestone {
	rec := &Milestone{
		Number:       m.GetNumber(),
		Title:        m.GetTitle(),
		State:        m.GetState(),
		OpenIssues:   m.GetOpenIssues(),
		ClosedIssues: m.GetClosedIssues(),
	}

	if m.DueOn != nil {
		t := m.DueOn.Time
		rec.DueOn = &t
	}

	return rec
}

// toCommit converts a go-github repository commit to a Commit record
func toCommit(rc *gogithub.RepositoryCommit) Commit {
	rec := Commit{
		SHA: rc.GetSHA(),
	}

	if rc.Commit != nil {
		rec.Message = rc.Commit.GetMessage()
		if rc.Commit.Author != nil && rc.Commit.Author.Date != nil {
			rec.AuthoredAt = rc.Commit.Author.Date.Time
		}
	}

	for _, parent := range rc.Parents {
		rec.Parents = append(rec.Parents, parent.GetSHA())
	}

	return rec
}
