package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	getRepositoryFn    func(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	listContributorsFn func(ctx context.Context, owner, repo string, opts *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error)
	listIssuesFn       func(ctx context.Context, owner, repo string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error)
}

func (m *mockClient) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error) {
	return m.getRepositoryFn(ctx, owner, repo)
}

func (m *mockClient) ListContributors(ctx context.Context, owner, repo string, opts *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error) {
	return m.listContributorsFn(ctx, owner, repo, opts)
}

func (m *mockClient) ListIssues(ctx context.Context, owner, repo string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error) {
	return m.listIssuesFn(ctx, owner, repo, opts)
}

// emptyResponse returns a *gh.Response that signals no more pages.
func emptyResponse() *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: 200},
	}
}

// notFound builds the error go-github returns for a 404.
func notFound() error {
	return &gh.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "Not Found",
	}
}
