package stats

import (
	"fmt"

	"ghpro.dev/ghpro/internal/output"
)

// Render writes the milestone report. A milestone with zero records renders
// an explicit no-activity message rather than an empty table.
func Render(splog *output.Splog, report *Report) {
	splog.Heading("Milestone %s in %s", report.Milestone, report.Repo)
	splog.Newline()

	if report.Total() == 0 {
		splog.Info("No activity in milestone %s.", report.Milestone)
		return
	}

	splog.Info("Pull requests: %s", formatCategory(report.PullRequests))
	splog.Info("Issues:        %s", formatCategory(report.Issues))
	splog.Newline()

	splog.Info("Contributors: %d", len(report.Contributors))
	for _, login := range report.Contributors {
		splog.Info("  %s", login)
	}
}

func formatCategory(count CategoryCount) string {
	s := fmt.Sprintf("%d total, %d closed", count.Total, count.Closed)
	if count.Open > 0 {
		s += fmt.Sprintf(", %d open", count.Open)
	}
	return s
}
