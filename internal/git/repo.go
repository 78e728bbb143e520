package git

import (
	"fmt"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// Repo combines a go-git handle for reads (refs, remotes) with a Runner for
// mutations (checkout, cherry-pick, push), mirroring how git is split across
// reads and working-tree operations elsewhere in the tool.
type Repo struct {
	root   string
	gg     *gogit.Repository
	runner *Runner
}

// Open opens the repository containing path, searching upward for .git
func Open(path string) (*Repo, error) {
	gg, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := gg.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	return &Repo{
		root:   root,
		gg:     gg,
		runner: NewRunner(root),
	}, nil
}

// Root returns the repository root directory
func (r *Repo) Root() string {
	return r.root
}

// WithLogger attaches a logger that records every git invocation
func (r *Repo) WithLogger(logger *zap.Logger) *Repo {
	r.runner.logger = logger
	return r
}

// BranchExists reports whether a local branch exists
func (r *Repo) BranchExists(name string) bool {
	_, err := r.gg.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// RemoteBranchExists reports whether a remote-tracking branch exists
func (r *Repo) RemoteBranchExists(remote, name string) bool {
	_, err := r.gg.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	return err == nil
}

// remoteURLPattern matches the owner/name path of GitHub remote URLs:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
//	ssh://git@github.com/owner/repo
var remoteURLPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)

// GuessOwnerRepo determines the GitHub project for this clone, preferring an
// "upstream" remote over "origin" so forks resolve to the project they track.
func (r *Repo) GuessOwnerRepo() (owner, repo string, err error) {
	remotes, err := r.gg.Remotes()
	if err != nil {
		return "", "", fmt.Errorf("failed to list remotes: %w", err)
	}

	for _, preferred := range []string{"upstream", "origin"} {
		for _, remote := range remotes {
			if remote.Config().Name != preferred || len(remote.Config().URLs) == 0 {
				continue
			}
			owner, repo, ok := parseOwnerRepo(remote.Config().URLs[0])
			if ok {
				return owner, repo, nil
			}
		}
	}

	return "", "", fmt.Errorf("could not determine GitHub project from remotes; pass --repo")
}

// DefaultRemote returns the remote backport branches are pushed to,
// preferring "upstream" when configured.
func (r *Repo) DefaultRemote() string {
	remotes, err := r.gg.Remotes()
	if err != nil {
		return "origin"
	}

	for _, remote := range remotes {
		if remote.Config().Name == "upstream" {
			return "upstream"
		}
	}
	return "origin"
}

// parseOwnerRepo extracts owner and repository name from a GitHub remote URL
func parseOwnerRepo(url string) (owner, repo string, ok bool) {
	m := remoteURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
