// Package github provides a client for the GitHub REST API scoped to a
// single repository. The exported types are simplified records decoupled
// from the go-github library so the rest of the code never handles API
// pointer fields.
package github

import "time"

// Issue is a record from the issues listing. GitHub returns pull requests
// in issue listings too; IsPullRequest distinguishes them.
type Issue struct {
	Number        int
	Title         string
	State         string // "open" or "closed"
	Author        string
	Labels        []string
	Milestone     string
	IsPullRequest bool
}

// PullRequest contains information about a pull request
type PullRequest struct {
	Number         int
	Title          string
	Body           string
	State          string // "open" or "closed"
	Merged         bool
	MergedAt       *time.Time
	MergeCommitSHA string
	Author         string
	Labels         []string
	Milestone      string
	Base           string
	Head           string
	HTMLURL        string
}

// Milestone is a release grouping; used only as a filter key
type Milestone struct {
	Number       int
	Title        string
	State        string
	DueOn        *time.Time
	OpenIssues   int
	ClosedIssues int
}

// Commit is the unit cherry-picked during backport application
type Commit struct {
	SHA        string
	Message    string
	Parents    []string
	AuthoredAt time.Time
}

// Comment is an issue comment, used by comment-based completion policies
type Comment struct {
	Author string
	Body   string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Head  string
	Base  string
	Body  string
	Draft bool
}
