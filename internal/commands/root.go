package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repostats/internal/cache"
	"github.com/stahnma/gh-repostats/internal/config"
	"github.com/stahnma/gh-repostats/internal/format"
	ghub "github.com/stahnma/gh-repostats/internal/github"
	"github.com/stahnma/gh-repostats/internal/history"
	"github.com/stahnma/gh-repostats/internal/report"
)

// App holds shared application state.
type App struct {
	Config   config.Config
	Cache    *cache.Cache
	GHClient ghub.Client
	Logger   *logrus.Logger
	GitSHA   string
	GitDirty string
}

// NewApp creates a new App from the given configuration.
func NewApp(cfg config.Config, gitSHA, gitDirty string) *App {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.DebugMode {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &App{
		Config:   cfg,
		Cache:    cache.New(),
		Logger:   logger,
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}
}

// ensureClient creates the GitHub client if it doesn't exist. The token is optional.
func (a *App) ensureClient(token string) error {
	if a.GHClient != nil {
		return nil
	}
	client, err := ghub.NewClient(token, a.Config.APIBaseURL)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}
	a.GHClient = client
	return nil
}

// Report writes the full report for repoURL to w. Step failures are part of
// the report text; the returned error only carries them for logging, or
// reports a setup failure.
func (a *App) Report(ctx context.Context, w io.Writer, repoURL, token string) error {
	if err := a.ensureClient(token); err != nil {
		return err
	}

	store := &history.Store{
		Root:   a.Config.CloneRoot,
		Host:   a.Config.CloneHost,
		Cache:  a.Cache,
		Logger: a.Logger,
	}
	if a.Config.DebugMode {
		store.Progress = a.Logger.Out
	}

	r := &report.Reporter{
		ID:      ghub.ParseIdentity(repoURL),
		Client:  a.GHClient,
		History: store,
		Logger:  a.Logger,
	}
	return format.WriteBlock(w, a.Config.SlackMode, func(w io.Writer) error {
		r.Out = w
		return r.Run(ctx)
	})
}

// NewRootCommand creates the root cobra command, which prints the report.
func (a *App) NewRootCommand() *cobra.Command {
	var token string

	rootCmd := &cobra.Command{
		Use:   "gh-repostats <repo_url>",
		Short: "Show metadata, contributors, issue counts and commit count for a GitHub repository.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = a.Config.GitHubToken
			}
			if err := a.ensureClient(token); err != nil {
				return err
			}
			if err := a.Report(context.Background(), cmd.OutOrStdout(), args[0], token); err != nil {
				a.Logger.WithError(err).Debug("report finished with failures")
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (defaults to $GITHUB_TOKEN)")

	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}
