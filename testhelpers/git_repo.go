package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a throwaway git repository for tests
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a fresh repository under t.TempDir with a "main"
// default branch and a test user configured for commits.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "init", "-b", "main", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	repo.Git(t, "config", "user.name", "Test User")
	repo.Git(t, "config", "user.email", "test@example.com")

	return repo
}

// NewBareRepo initializes a bare repository to serve as a push target
func NewBareRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--bare", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}
	return dir
}

// Git runs a git command in the repository, failing the test on error
func (r *GitRepo) Git(t *testing.T, args ...string) string {
	t.Helper()

	out, err := r.git(args...)
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return out
}

// GitErr runs a git command and returns its error, for tests exercising
// failure paths
func (r *GitRepo) GitErr(args ...string) (string, error) {
	return r.git(args...)
}

func (r *GitRepo) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_EDITOR=true")
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Commit writes content to name and commits it
func (r *GitRepo) Commit(t *testing.T, message, name, content string) string {
	t.Helper()

	if err := os.WriteFile(filepath.Join(r.Dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	r.Git(t, "add", name)
	r.Git(t, "commit", "-m", message)
	return r.Git(t, "rev-parse", "HEAD")
}

// SetRemote points a named remote at url without fetching
func (r *GitRepo) SetRemote(t *testing.T, name, url string) {
	t.Helper()
	r.Git(t, "remote", "add", name, url)
}

// Tag creates an annotated tag at HEAD, which `git describe` resolves
func (r *GitRepo) Tag(t *testing.T, name string) {
	t.Helper()
	r.Git(t, "tag", "-a", name, "-m", name)
}

// CurrentBranch returns the checked-out branch name
func (r *GitRepo) CurrentBranch(t *testing.T) string {
	t.Helper()
	return r.Git(t, "symbolic-ref", "--short", "HEAD")
}

// FileExists reports whether a path exists in the working tree
func (r *GitRepo) FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(r.Dir, name))
	return err == nil
}

// String implements fmt.Stringer for debug output
func (r *GitRepo) String() string {
	return fmt.Sprintf("GitRepo(%s)", r.Dir)
}
