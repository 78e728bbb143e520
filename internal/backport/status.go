// Package backport tracks which merged pull requests still need to be
// cherry-picked onto maintenance branches, and performs the cherry-pick
// workflow itself.
package backport

import (
	"fmt"
	"strings"
)

// Status describes where a pull request stands for one target branch
type Status int

const (
	// StatusNone means the PR carries no backport marker
	StatusNone Status = iota
	// StatusPending means the PR is labeled for backport
	StatusPending
	// StatusApplied means a completion marker exists for the branch
	StatusApplied
)

// Mark is one backport marker parsed from label text
type Mark struct {
	Status Status
	// Branch is the target maintenance branch, e.g. "4.x". Empty when the
	// label names no branch; callers fall back to the milestone default.
	Branch string
	// TargetPR is the PR that performed the backport, when known
	TargetPR int
}

const (
	pendingPrefix = "backport-"
	appliedPrefix = "backported-"
	bareLabel     = "backport"
)

// ParseLabels extracts backport markers from a PR's label set. The label
// convention is weakly typed text; this is the only place it is interpreted.
//
//	backport-4.x   -> pending, branch 4.x
//	backport       -> pending, branch decided by the milestone
//	backported-4.x -> applied to 4.x
func ParseLabels(labels []string) []Mark {
	var marks []Mark
	for _, label := range labels {
		label = strings.TrimSpace(label)
		switch {
		case strings.HasPrefix(label, appliedPrefix):
			marks = append(marks, Mark{
				Status: StatusApplied,
				Branch: label[len(appliedPrefix):],
			})
		case strings.HasPrefix(label, pendingPrefix):
			marks = append(marks, Mark{
				Status: StatusPending,
				Branch: label[len(pendingPrefix):],
			})
		case label == bareLabel:
			marks = append(marks, Mark{Status: StatusPending})
		}
	}
	return marks
}

// DefaultBranch derives the maintenance branch for a milestone: the major
// version followed by ".x", so milestone "4.3" targets branch "4.x".
func DefaultBranch(milestone string) string {
	major, _, found := strings.Cut(milestone, ".")
	if !found || major == "" {
		return milestone + ".x"
	}
	return major + ".x"
}

// BranchName is the deterministic name for the local branch a backport is
// prepared on, e.g. backport-1234-to-4.x.
func BranchName(prNumber int, target string) string {
	return fmt.Sprintf("backport-%d-to-%s", prNumber, target)
}
