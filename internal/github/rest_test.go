package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
)

// newTestClient builds a RESTClient pointed at an httptest server
func newTestClient(t *testing.T, handler http.Handler) (*RESTClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gh := gogithub.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return newRESTClientWithBaseURL(gh, "owner", "repo"), srv
}

func TestListIssuesPagination(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/repos/owner/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "11", r.URL.Query().Get("milestone"))

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")

		switch page {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/issues?page=2&milestone=11>; rel="next"`, srv.URL))
			fmt.Fprint(w, `[{"number": 1, "title": "one", "state": "closed", "user": {"login": "alice"}},
				{"number": 2, "title": "two", "state": "open", "user": {"login": "bob"},
				 "pull_request": {"url": "https://api.github.com/repos/owner/repo/pulls/2"}}]`)
		case "2":
			fmt.Fprint(w, `[{"number": 3, "title": "three", "state": "closed", "user": {"login": "alice"},
				"labels": [{"name": "backport-4.x"}]}]`)
		default:
			t.Errorf("unexpected page %q", page)
		}
	})

	client, server := newTestClient(t, mux)
	srv = server

	issues, err := client.ListIssues(context.Background(), IssueFilters{Milestone: 11, State: StateAll})
	require.NoError(t, err)
	require.Len(t, issues, 3, "both pages must be drained")

	assert.False(t, issues[0].IsPullRequest)
	assert.True(t, issues[1].IsPullRequest)
	assert.Equal(t, []string{"backport-4.x"}, issues[2].Labels)
}

func TestGetMilestone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/milestones", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"number": 7, "title": "4.2", "state": "closed"},
			{"number": 11, "title": "4.3", "state": "open", "open_issues": 2, "closed_issues": 9}]`)
	})

	client, _ := newTestClient(t, mux)

	t.Run("found by title", func(t *testing.T) {
		ms, err := client.GetMilestone(context.Background(), "4.3")
		require.NoError(t, err)
		assert.Equal(t, 11, ms.Number)
		assert.Equal(t, 9, ms.ClosedIssues)
	})

	t.Run("missing title is not-found", func(t *testing.T) {
		_, err := client.GetMilestone(context.Background(), "9.9")
		require.ErrorIs(t, err, ghproerrors.ErrNotFound)
	})
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls/1234", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 1234, "title": "fix", "state": "closed",
			"merged_at": "2026-01-02T15:04:05Z", "merge_commit_sha": "abc123",
			"user": {"login": "alice"}, "base": {"ref": "main"}, "head": {"ref": "fix-branch"}}`)
	})

	client, _ := newTestClient(t, mux)

	pr, err := client.GetPullRequest(context.Background(), 1234)
	require.NoError(t, err)
	assert.True(t, pr.Merged, "merged_at implies merged even without the flag")
	assert.Equal(t, "abc123", pr.MergeCommitSHA)
	assert.Equal(t, "main", pr.Base)
}

func TestListPullRequestCommitsOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls/7/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"sha": "c1", "commit": {"message": "first"}},
			{"sha": "c2", "commit": {"message": "second"}, "parents": [{"sha": "c1"}]}]`)
	})

	client, _ := newTestClient(t, mux)

	commits, err := client.ListPullRequestCommits(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "c1", commits[0].SHA)
	assert.Equal(t, "c2", commits[1].SHA)
	assert.Equal(t, []string{"c1"}, commits[1].Parents)
}

func TestErrorClassification(t *testing.T) {
	t.Run("401 is an authentication error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
		}))

		_, err := client.GetPullRequest(context.Background(), 1)
		require.ErrorIs(t, err, ghproerrors.ErrAuthentication)
	})

	t.Run("404 is not-found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
		}))

		_, err := client.GetPullRequest(context.Background(), 1)
		require.ErrorIs(t, err, ghproerrors.ErrNotFound)
	})

	t.Run("403 with exhausted quota is a rate-limit error with a retry hint", func(t *testing.T) {
		reset := time.Now().Add(10 * time.Minute).Unix()
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", "60")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "API rate limit exceeded"})
		}))

		_, err := client.GetPullRequest(context.Background(), 1)
		require.ErrorIs(t, err, ghproerrors.ErrRateLimit)

		var rateErr *ghproerrors.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Greater(t, rateErr.RetryAfter, time.Duration(0))
	})

	t.Run("unreachable server is a network error", func(t *testing.T) {
		client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := client.GetPullRequest(context.Background(), 1)
		require.ErrorIs(t, err, ghproerrors.ErrNetwork)
	})
}

func TestDebugLoggingOnAPICalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 1, "title": "fix", "state": "open"}`)
	})

	client, _ := newTestClient(t, mux)
	core, logs := observer.New(zapcore.DebugLevel)
	client.logger = zap.New(core)

	_, err := client.GetPullRequest(context.Background(), 1)
	require.NoError(t, err)

	entries := logs.FilterMessage("github: get pull request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1, entries[0].ContextMap()["number"])
}

func TestCreatePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Title string `json:"title"`
			Head  string `json:"head"`
			Base  string `json:"base"`
			Body  string `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Backport PR #1234: fix", body.Title)
		assert.Equal(t, "backport-1234-to-4.x", body.Head)
		assert.Equal(t, "4.x", body.Base)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"number": 2000, "title": %q, "state": "open",
			"html_url": "https://github.com/owner/repo/pull/2000"}`, body.Title)
	})

	client, _ := newTestClient(t, mux)

	pr, err := client.CreatePullRequest(context.Background(), CreatePROptions{
		Title: "Backport PR #1234: fix",
		Head:  "backport-1234-to-4.x",
		Base:  "4.x",
		Body:  "Backport of #1234 to `4.x`.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, pr.Number)
	assert.Equal(t, "https://github.com/owner/repo/pull/2000", pr.HTMLURL)
}
