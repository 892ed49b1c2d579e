package github

import (
	"context"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// FetchRepositoryInfo retrieves the repository resource for id.
func FetchRepositoryInfo(ctx context.Context, client Client, id Identity) (RepositoryInfo, error) {
	repo, _, err := client.GetRepository(ctx, id.Owner, id.Name)
	if err != nil {
		return RepositoryInfo{}, fmt.Errorf("getting repository %s: %w", id.FullName(), err)
	}
	return RepositoryInfo{
		Name:        repo.GetName(),
		OwnerLogin:  repo.GetOwner().GetLogin(),
		Description: repo.Description,
		CreatedAt:   repo.GetCreatedAt().Time,
	}, nil
}

// FetchContributors lists the first page of contributors in server order.
func FetchContributors(ctx context.Context, client Client, id Identity) ([]Contributor, error) {
	list, _, err := client.ListContributors(ctx, id.Owner, id.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("listing contributors of %s: %w", id.FullName(), err)
	}
	contributors := make([]Contributor, 0, len(list))
	for _, c := range list {
		contributors = append(contributors, Contributor{
			Login:         c.GetLogin(),
			Contributions: c.GetContributions(),
		})
	}
	return contributors, nil
}

// FetchIssueCount reads the issue count proxy for id.
func FetchIssueCount(ctx context.Context, client Client, id Identity) (ProxyCount, error) {
	return fetchProxyCount(ctx, client, id, "")
}

// FetchPullRequestCount reads the pull request count proxy for id.
func FetchPullRequestCount(ctx context.Context, client Client, id Identity) (ProxyCount, error) {
	return fetchProxyCount(ctx, client, id, "all")
}

func fetchProxyCount(ctx context.Context, client Client, id Identity, pullRequest string) (ProxyCount, error) {
	opts := &IssueListOptions{
		State:       "all",
		PullRequest: pullRequest,
		ListOptions: gh.ListOptions{Page: 1, PerPage: 1},
	}
	issues, resp, err := client.ListIssues(ctx, id.Owner, id.Name, opts)
	if err != nil {
		return ProxyCount{}, fmt.Errorf("listing issues of %s: %w", id.FullName(), err)
	}

	var pc ProxyCount
	if len(issues) > 0 {
		pc.Latest = issues[0].GetNumber()
	}
	pc.Listed = len(issues)
	if resp != nil && resp.LastPage > 0 {
		pc.Listed = resp.LastPage
	}
	return pc, nil
}

// Describe renders err for a single report line. GitHub error responses are
// reduced to their status and message.
func Describe(err error) string {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Sprintf("rate limit exceeded: %s", rateErr.Message)
	}
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return fmt.Sprintf("%d %s", errResp.Response.StatusCode, errResp.Message)
	}
	return err.Error()
}
