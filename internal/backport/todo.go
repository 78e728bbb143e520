package backport

import (
	"context"
	"fmt"
	"sort"

	"ghpro.dev/ghpro/internal/github"
	"ghpro.dev/ghpro/internal/output"
)

// TodoItem is one pending backport
type TodoItem struct {
	Number int
	Title  string
	Branch string
}

// Tracker lists merged PRs that are marked for backport but not yet applied
type Tracker struct {
	Client github.Client
	Policy CompletionPolicy
	Splog  *output.Splog
}

// Todo returns the pending backports for a milestone, sorted by PR number
// ascending. branchOverride, when non-empty, replaces the branch derived
// from labels and the milestone. The listing is read-only and idempotent.
func (t *Tracker) Todo(ctx context.Context, milestone, branchOverride string) ([]TodoItem, error) {
	ms, err := t.Client.GetMilestone(ctx, milestone)
	if err != nil {
		return nil, err
	}

	issues, err := t.Client.ListIssues(ctx, github.IssueFilters{
		Milestone: ms.Number,
		State:     github.StateClosed,
	})
	if err != nil {
		return nil, err
	}

	var items []TodoItem
	seen := make(map[string]bool) // "number@branch"
	for _, issue := range issues {
		if !issue.IsPullRequest {
			continue
		}

		pr, err := t.Client.GetPullRequest(ctx, issue.Number)
		if err != nil {
			return nil, err
		}

		if !pr.Merged {
			t.Splog.Warn("PR #%d closed without merge, skipping", pr.Number)
			continue
		}

		for _, mark := range ParseLabels(pr.Labels) {
			if mark.Status != StatusPending {
				continue
			}

			branch := mark.Branch
			if branchOverride != "" {
				branch = branchOverride
			}
			if branch == "" {
				branch = DefaultBranch(milestone)
			}

			// A bare "backport" label plus "backport-4.x", or a --branch
			// override, can resolve several marks to the same branch
			key := fmt.Sprintf("%d@%s", pr.Number, branch)
			if seen[key] {
				continue
			}

			applied, err := t.Policy.Applied(ctx, pr, branch)
			if err != nil {
				return nil, err
			}
			if applied {
				continue
			}

			seen[key] = true
			items = append(items, TodoItem{
				Number: pr.Number,
				Title:  pr.Title,
				Branch: branch,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Number != items[j].Number {
			return items[i].Number < items[j].Number
		}
		return items[i].Branch < items[j].Branch
	})

	return items, nil
}
