// Package git wraps the git commands and go-git reads needed to drive a
// backport: branch creation, cherry-picking, pushing, and remote inspection.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	ghproerrors "ghpro.dev/ghpro/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// Runner handles execution of git commands in a working directory
type Runner struct {
	workingDir string
	logger     *zap.Logger
}

// NewRunner creates a new Runner rooted at workingDir
func NewRunner(workingDir string) *Runner {
	return &Runner{workingDir: workingDir, logger: zap.NewNop()}
}

// Run executes a git command and returns its trimmed stdout
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runWithEnv(ctx, nil, args...)
}

// runWithEnv executes a git command with extra environment variables
func (r *Runner) runWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("git",
		zap.Strings("args", args),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return "", ghproerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
