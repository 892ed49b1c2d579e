package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

// Client defines the GitHub API methods used by this application.
type Client interface {
	GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	ListContributors(ctx context.Context, owner, repo string, opts *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error)
	ListIssues(ctx context.Context, owner, repo string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error)
}

// IssueListOptions are the query parameters sent to the repository issues
// endpoint. go-github's own option type has no pull_request filter.
type IssueListOptions struct {
	State       string `url:"state,omitempty"`
	PullRequest string `url:"pull_request,omitempty"`

	gh.ListOptions
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a GitHub API client rooted at baseURL. When token is
// non-empty every request carries it as a bearer token.
func NewClient(token, baseURL string) (Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	inner := gh.NewClient(httpClient)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing API base URL %q: %w", baseURL, err)
		}
		inner.BaseURL = u
	}
	return &realClient{inner: inner}, nil
}

func (c *realClient) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error) {
	return c.inner.Repositories.Get(ctx, owner, repo)
}

func (c *realClient) ListContributors(ctx context.Context, owner, repo string, opts *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error) {
	return c.inner.Repositories.ListContributors(ctx, owner, repo, opts)
}

func (c *realClient) ListIssues(ctx context.Context, owner, repo string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error) {
	u := fmt.Sprintf("repos/%v/%v/issues", owner, repo)
	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return nil, nil, err
		}
		if len(v) > 0 {
			u += "?" + v.Encode()
		}
	}

	req, err := c.inner.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}

	var issues []*gh.Issue
	resp, err := c.inner.Do(ctx, req, &issues)
	if err != nil {
		return nil, resp, err
	}
	return issues, resp, nil
}
