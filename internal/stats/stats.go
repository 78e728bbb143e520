// Package stats computes summary statistics for a release milestone:
// issue and pull-request counts by state plus the set of contributors.
package stats

import (
	"context"
	"sort"
	"strings"

	"ghpro.dev/ghpro/internal/github"
)

// CategoryCount holds per-category record counts
type CategoryCount struct {
	Total  int
	Open   int
	Closed int
}

// Report is the computed milestone summary
type Report struct {
	Repo         string
	Milestone    string
	Issues       CategoryCount
	PullRequests CategoryCount
	Contributors []string
}

// Total returns the number of records across both categories
func (r *Report) Total() int {
	return r.Issues.Total + r.PullRequests.Total
}

// Collect fetches every issue and pull request assigned to the milestone and
// computes the report. A milestone with no records yields an empty report,
// not an error.
func Collect(ctx context.Context, client github.Client, milestone string) (*Report, error) {
	ms, err := client.GetMilestone(ctx, milestone)
	if err != nil {
		return nil, err
	}

	issues, err := client.ListIssues(ctx, github.IssueFilters{
		Milestone: ms.Number,
		State:     github.StateAll,
	})
	if err != nil {
		return nil, err
	}

	owner, repo := client.OwnerRepo()
	report := &Report{
		Repo:      owner + "/" + repo,
		Milestone: ms.Title,
	}

	seen := make(map[string]string) // lowercase login -> original casing
	for _, issue := range issues {
		count := &report.Issues
		if issue.IsPullRequest {
			count = &report.PullRequests
		}

		count.Total++
		if issue.State == github.StateClosed {
			count.Closed++
		} else {
			count.Open++
		}

		if issue.Author != "" {
			key := strings.ToLower(issue.Author)
			if _, ok := seen[key]; !ok {
				seen[key] = issue.Author
			}
		}
	}

	for _, login := range seen {
		report.Contributors = append(report.Contributors, login)
	}
	sort.Slice(report.Contributors, func(i, j int) bool {
		return strings.ToLower(report.Contributors[i]) < strings.ToLower(report.Contributors[j])
	})

	return report, nil
}
