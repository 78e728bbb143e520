package stats_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
	"ghpro.dev/ghpro/internal/github"
	"ghpro.dev/ghpro/internal/output"
	"ghpro.dev/ghpro/internal/stats"
	"ghpro.dev/ghpro/testhelpers"
)

func newStatsFixture() *testhelpers.FakeGitHubClient {
	client := testhelpers.NewFakeGitHubClient("owner", "repo")
	client.Milestones["4.3"] = &github.Milestone{Number: 11, Title: "4.3"}
	return client
}

func TestCollect(t *testing.T) {
	t.Run("partitions records and counts states", func(t *testing.T) {
		client := newStatsFixture()
		client.Issues[11] = []github.Issue{
			{Number: 1, State: github.StateClosed, Author: "alice", IsPullRequest: true},
			{Number: 2, State: github.StateOpen, Author: "bob", IsPullRequest: true},
			{Number: 3, State: github.StateClosed, Author: "carol"},
			{Number: 4, State: github.StateClosed, Author: "alice"},
		}

		report, err := stats.Collect(context.Background(), client, "4.3")
		require.NoError(t, err)

		assert.Equal(t, stats.CategoryCount{Total: 2, Open: 1, Closed: 1}, report.PullRequests)
		assert.Equal(t, stats.CategoryCount{Total: 2, Closed: 2}, report.Issues)
		assert.Equal(t, "owner/repo", report.Repo)

		// total == issues + pull requests, contributors never exceed records
		assert.Equal(t, 4, report.Total())
		assert.LessOrEqual(t, len(report.Contributors), report.Total())
	})

	t.Run("contributors are deduped case-insensitively and sorted", func(t *testing.T) {
		client := newStatsFixture()
		client.Issues[11] = []github.Issue{
			{Number: 1, State: github.StateClosed, Author: "Alice", IsPullRequest: true},
			{Number: 2, State: github.StateClosed, Author: "alice", IsPullRequest: true},
			{Number: 3, State: github.StateClosed, Author: "bob"},
		}

		report, err := stats.Collect(context.Background(), client, "4.3")
		require.NoError(t, err)
		require.Len(t, report.Contributors, 2)
		assert.Equal(t, "bob", report.Contributors[1])
	})

	t.Run("empty milestone yields an empty report, not an error", func(t *testing.T) {
		client := newStatsFixture()

		report, err := stats.Collect(context.Background(), client, "4.3")
		require.NoError(t, err)
		assert.Zero(t, report.Total())
		assert.Empty(t, report.Contributors)
	})

	t.Run("unknown milestone propagates not-found", func(t *testing.T) {
		client := newStatsFixture()

		_, err := stats.Collect(context.Background(), client, "9.9")
		require.ErrorIs(t, err, ghproerrors.ErrNotFound)
	})
}

func TestRender(t *testing.T) {
	t.Run("zero activity renders an explicit message", func(t *testing.T) {
		var buf bytes.Buffer
		stats.Render(output.NewSplogWriter(&buf), &stats.Report{
			Repo:      "owner/repo",
			Milestone: "4.3",
		})

		assert.Contains(t, buf.String(), "No activity in milestone 4.3.")
	})

	t.Run("report lists counts and contributors", func(t *testing.T) {
		var buf bytes.Buffer
		stats.Render(output.NewSplogWriter(&buf), &stats.Report{
			Repo:         "owner/repo",
			Milestone:    "4.3",
			Issues:       stats.CategoryCount{Total: 3, Closed: 3},
			PullRequests: stats.CategoryCount{Total: 5, Closed: 4, Open: 1},
			Contributors: []string{"alice", "bob"},
		})

		out := buf.String()
		assert.Contains(t, out, "Milestone 4.3 in owner/repo")
		assert.Contains(t, out, "5 total, 4 closed, 1 open")
		assert.Contains(t, out, "3 total, 3 closed")
		assert.Contains(t, out, "Contributors: 2")
		assert.Contains(t, out, "alice")
		assert.Contains(t, out, "bob")
	})
}
