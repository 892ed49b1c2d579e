// Package report prints the repository report: metadata, contributors,
// issue and pull request counts, and the commit count of a local clone.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stahnma/gh-repostats/internal/format"
	ghub "github.com/stahnma/gh-repostats/internal/github"
	"github.com/stahnma/gh-repostats/internal/history"
)

// Reporter runs the report steps for one repository. Step failures are
// written to Out as text and never stop the run.
type Reporter struct {
	ID      ghub.Identity
	Client  ghub.Client
	History *history.Store
	Out     io.Writer
	Logger  logrus.FieldLogger
}

// Run prints every step, each framed by separators, and returns the joined
// step errors for logging.
func (r *Reporter) Run(ctx context.Context) error {
	if !r.ID.Valid() {
		r.logger().Debugf("incomplete repository identity %q", r.ID.FullName())
	}

	steps := []func(context.Context) error{
		r.RepositoryInfo,
		r.Contributors,
		r.IssuesAndPullRequests,
		r.CommitHistory,
	}

	var errs []error
	format.WriteSeparator(r.Out)
	for _, step := range steps {
		if err := step(ctx); err != nil {
			errs = append(errs, err)
		}
		format.WriteSeparator(r.Out)
	}
	return errors.Join(errs...)
}

// RepositoryInfo prints name, owner, description and creation time.
func (r *Reporter) RepositoryInfo(ctx context.Context) error {
	r.logger().Debugf("fetching repository %s", r.ID.FullName())
	info, err := ghub.FetchRepositoryInfo(ctx, r.Client, r.ID)
	if err != nil {
		return r.fail("Failed to fetch repository information", err)
	}
	format.WriteField(r.Out, "Repository name", info.Name)
	format.WriteField(r.Out, "Repository owner", info.OwnerLogin)
	format.WriteField(r.Out, "Repository description", format.OrNull(info.Description))
	format.WriteField(r.Out, "Repository created at", info.CreatedAt.UTC().Format(time.RFC3339))
	return nil
}

// Contributors prints one line per contributor in the order GitHub returns them.
func (r *Reporter) Contributors(ctx context.Context) error {
	r.logger().Debugf("fetching contributors of %s", r.ID.FullName())
	contributors, err := ghub.FetchContributors(ctx, r.Client, r.ID)
	if err != nil {
		return r.fail("Failed to fetch contributor information", err)
	}
	for _, c := range contributors {
		fmt.Fprintf(r.Out, "%s: %d contributions\n", c.Login, c.Contributions)
	}
	return nil
}

// IssuesAndPullRequests prints the number of the most recent issue and of
// the most recent pull request. These approximate the totals; the exact
// listed counts are only logged. Pull requests are not queried when the
// issue request fails.
func (r *Reporter) IssuesAndPullRequests(ctx context.Context) error {
	issues, err := ghub.FetchIssueCount(ctx, r.Client, r.ID)
	if err != nil {
		return r.fail("Failed to fetch issue information", err)
	}
	r.logger().WithField("listed", issues.Listed).Debug("issues and pull requests listed")
	format.WriteField(r.Out, "Number of issues", issues.Latest)

	pulls, err := ghub.FetchPullRequestCount(ctx, r.Client, r.ID)
	if err != nil {
		return r.fail("Failed to fetch pull request information", err)
	}
	r.logger().WithField("listed", pulls.Listed).Debug("pull request filter listed")
	format.WriteField(r.Out, "Number of pull requests", pulls.Latest)
	return nil
}

// CommitHistory clones the repository unless a local copy exists, then
// prints the number of commits reachable from HEAD.
func (r *Reporter) CommitHistory(ctx context.Context) error {
	if r.History.Exists(r.ID) {
		fmt.Fprintf(r.Out, "Reusing local clone at %s\n", r.History.Dir(r.ID))
	} else {
		fmt.Fprintf(r.Out, "Cloning %s into %s\n", r.History.CloneURL(r.ID), r.History.Dir(r.ID))
	}

	co, err := r.History.Open(ctx, r.ID)
	switch {
	case errors.Is(err, history.ErrCloneFailed):
		return r.fail("Failed to clone repository", err)
	case err != nil:
		return r.fail("Failed to open local clone", err)
	}

	n, err := r.History.CountCommits(co)
	if err != nil {
		return r.fail("Failed to count commits", err)
	}
	format.WriteField(r.Out, "Number of commits", n)
	return nil
}

func (r *Reporter) fail(msg string, err error) error {
	fmt.Fprintf(r.Out, "%s: %s\n", msg, ghub.Describe(err))
	r.logger().WithError(err).Debug(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func (r *Reporter) logger() logrus.FieldLogger {
	if r.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return r.Logger
}
