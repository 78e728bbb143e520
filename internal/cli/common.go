// Package cli wires the github-stats and backport-pr cobra commands.
package cli

import (
	"context"

	"go.uber.org/zap"

	"ghpro.dev/ghpro/internal/config"
	"ghpro.dev/ghpro/internal/git"
	"ghpro.dev/ghpro/internal/github"
	"ghpro.dev/ghpro/internal/output"
)

// runtime holds everything a command needs once flags are resolved
type runtime struct {
	cfg    *config.Config
	splog  *output.Splog
	logger *zap.Logger
	client github.Client
	repo   *git.Repo // nil when not run inside a clone
	remote string
}

// setup loads configuration, resolves the GitHub project and builds the API
// client. The repository is resolved from the --repo flag, then the config
// file, then the local clone's remotes. needRepo demands a local clone (the
// backport applier does; the stats tool does not).
func setup(ctx context.Context, repoFlag string, verbose, needRepo bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	repo, repoErr := git.Open(".")
	if needRepo && repoErr != nil {
		return nil, repoErr
	}
	if repoErr != nil {
		repo = nil
	}
	if repo != nil {
		repo.WithLogger(logger)
	}

	project := repoFlag
	if project == "" {
		project = cfg.Repo
	}

	var owner, name string
	if project != "" {
		owner, name, err = config.SplitRepo(project)
		if err != nil {
			return nil, err
		}
	} else {
		if repo == nil {
			return nil, repoErr
		}
		owner, name, err = repo.GuessOwnerRepo()
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("resolved project",
		zap.String("owner", owner),
		zap.String("repo", name))

	token, err := cfg.ResolveToken(ctx)
	if err != nil {
		return nil, err
	}

	client, err := github.NewRESTClient(ctx, owner, name, token, logger)
	if err != nil {
		return nil, err
	}

	remote := cfg.Remote
	if remote == "" && repo != nil {
		remote = repo.DefaultRemote()
	}
	if remote == "" {
		remote = "origin"
	}

	return &runtime{
		cfg:    cfg,
		splog:  output.NewSplog(),
		logger: logger,
		client: client,
		repo:   repo,
		remote: remote,
	}, nil
}
