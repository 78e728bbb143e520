// Package config resolves tool configuration from an optional YAML file,
// environment variables and the gh CLI's stored credentials.
package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tool configuration
type Config struct {
	// Token is the GitHub bearer credential
	Token string `mapstructure:"token"`
	// Repo is the default "owner/name" project, overriding remote guessing
	Repo string `mapstructure:"repo"`
	// Remote is the git remote backport branches are pushed to
	Remote string `mapstructure:"remote"`
	// CompletionPolicy selects how "already backported" is decided:
	// "label", "comments" or "log"
	CompletionPolicy string `mapstructure:"completion_policy"`
}

// DefaultCompletionPolicy is used when none is configured
const DefaultCompletionPolicy = "label"

// Load reads configuration from ~/.config/ghpro/config.yaml (when present)
// and the environment. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "ghpro"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ghpro")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("remote", "")
	v.SetDefault("completion_policy", DefaultCompletionPolicy)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

// ResolveToken returns the GitHub credential, in precedence order:
// GITHUB_TOKEN, GH_TOKEN, the config file, then the gh CLI's stored token.
func (c *Config) ResolveToken(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token, nil
	}
	if c.Token != "" {
		return c.Token, nil
	}

	out, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN or run `gh auth login`")
	}

	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", fmt.Errorf("gh CLI returned an empty token")
	}
	return token, nil
}

// SplitRepo parses an "owner/name" project identifier
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return parts[0], parts[1], nil
}
