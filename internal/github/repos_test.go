package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gh "github.com/google/go-github/v68/github"
)

var helloWorld = Identity{Owner: "octocat", Name: "Hello-World"}

// --- FetchRepositoryInfo ---

func TestFetchRepositoryInfo(t *testing.T) {
	created := time.Date(2011, 1, 26, 19, 1, 12, 0, time.UTC)
	client := &mockClient{
		getRepositoryFn: func(_ context.Context, owner, repo string) (*gh.Repository, *gh.Response, error) {
			if owner != "octocat" || repo != "Hello-World" {
				t.Errorf("unexpected repository %s/%s", owner, repo)
			}
			return &gh.Repository{
				Name:        gh.Ptr("Hello-World"),
				Owner:       &gh.User{Login: gh.Ptr("octocat")},
				Description: gh.Ptr("My first repository on GitHub!"),
				CreatedAt:   &gh.Timestamp{Time: created},
			}, emptyResponse(), nil
		},
	}

	info, err := FetchRepositoryInfo(context.Background(), client, helloWorld)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "Hello-World" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.OwnerLogin != "octocat" {
		t.Errorf("OwnerLogin = %q", info.OwnerLogin)
	}
	if info.Description == nil || *info.Description != "My first repository on GitHub!" {
		t.Errorf("Description = %v", info.Description)
	}
	if !info.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", info.CreatedAt, created)
	}
}

func TestFetchRepositoryInfo_NullDescription(t *testing.T) {
	client := &mockClient{
		getRepositoryFn: func(_ context.Context, _, _ string) (*gh.Repository, *gh.Response, error) {
			return &gh.Repository{Name: gh.Ptr("Hello-World")}, emptyResponse(), nil
		},
	}

	info, err := FetchRepositoryInfo(context.Background(), client, helloWorld)
	if err != nil {
		t.Fatal(err)
	}
	if info.Description != nil {
		t.Errorf("expected nil description, got %q", *info.Description)
	}
}

func TestFetchRepositoryInfo_Error(t *testing.T) {
	client := &mockClient{
		getRepositoryFn: func(_ context.Context, _, _ string) (*gh.Repository, *gh.Response, error) {
			return nil, nil, notFound()
		},
	}

	_, err := FetchRepositoryInfo(context.Background(), client, helloWorld)
	if err == nil {
		t.Fatal("expected error")
	}
	var errResp *gh.ErrorResponse
	if !errors.As(err, &errResp) {
		t.Errorf("expected wrapped *gh.ErrorResponse, got %T", err)
	}
}

// --- FetchContributors ---

func TestFetchContributors_KeepsServerOrder(t *testing.T) {
	client := &mockClient{
		listContributorsFn: func(_ context.Context, _, _ string, _ *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error) {
			return []*gh.Contributor{
				{Login: gh.Ptr("zed"), Contributions: gh.Ptr(3)},
				{Login: gh.Ptr("alice"), Contributions: gh.Ptr(10)},
			}, emptyResponse(), nil
		},
	}

	got, err := FetchContributors(context.Background(), client, helloWorld)
	if err != nil {
		t.Fatal(err)
	}
	want := []Contributor{{"zed", 3}, {"alice", 10}}
	if len(got) != len(want) {
		t.Fatalf("got %d contributors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("contributor %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFetchContributors_Empty(t *testing.T) {
	client := &mockClient{
		listContributorsFn: func(_ context.Context, _, _ string, _ *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error) {
			return []*gh.Contributor{}, emptyResponse(), nil
		},
	}

	got, err := FetchContributors(context.Background(), client, helloWorld)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no contributors, got %d", len(got))
	}
}

func TestFetchContributors_Error(t *testing.T) {
	client := &mockClient{
		listContributorsFn: func(_ context.Context, _, _ string, _ *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error) {
			return nil, nil, errors.New("network error")
		},
	}

	if _, err := FetchContributors(context.Background(), client, helloWorld); err == nil {
		t.Error("expected error")
	}
}

// --- Proxy counts ---

func TestFetchIssueCount(t *testing.T) {
	tests := []struct {
		name       string
		issues     []*gh.Issue
		lastPage   int
		wantLatest int
		wantListed int
	}{
		{"empty page", []*gh.Issue{}, 0, 0, 0},
		{"single item", []*gh.Issue{{Number: gh.Ptr(42)}}, 0, 42, 1},
		{"more pages", []*gh.Issue{{Number: gh.Ptr(1347)}}, 57, 1347, 57},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{
				listIssuesFn: func(_ context.Context, _, _ string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error) {
					if opts.State != "all" || opts.PerPage != 1 || opts.Page != 1 {
						t.Errorf("unexpected options %+v", opts)
					}
					if opts.PullRequest != "" {
						t.Errorf("issue count should not filter pull requests, got %q", opts.PullRequest)
					}
					resp := emptyResponse()
					resp.LastPage = tt.lastPage
					return tt.issues, resp, nil
				},
			}

			got, err := FetchIssueCount(context.Background(), client, helloWorld)
			if err != nil {
				t.Fatal(err)
			}
			if got.Latest != tt.wantLatest {
				t.Errorf("Latest = %d, want %d", got.Latest, tt.wantLatest)
			}
			if got.Listed != tt.wantListed {
				t.Errorf("Listed = %d, want %d", got.Listed, tt.wantListed)
			}
		})
	}
}

func TestFetchPullRequestCount(t *testing.T) {
	client := &mockClient{
		listIssuesFn: func(_ context.Context, _, _ string, opts *IssueListOptions) ([]*gh.Issue, *gh.Response, error) {
			if opts.PullRequest != "all" {
				t.Errorf("PullRequest = %q, want all", opts.PullRequest)
			}
			return []*gh.Issue{{Number: gh.Ptr(7)}}, emptyResponse(), nil
		},
	}

	got, err := FetchPullRequestCount(context.Background(), client, helloWorld)
	if err != nil {
		t.Fatal(err)
	}
	if got.Latest != 7 {
		t.Errorf("Latest = %d, want 7", got.Latest)
	}
}

func TestFetchIssueCount_Error(t *testing.T) {
	client := &mockClient{
		listIssuesFn: func(_ context.Context, _, _ string, _ *IssueListOptions) ([]*gh.Issue, *gh.Response, error) {
			return nil, nil, notFound()
		},
	}

	if _, err := FetchIssueCount(context.Background(), client, helloWorld); err == nil {
		t.Error("expected error")
	}
}

// --- Describe ---

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"error response", notFound(), "404 Not Found"},
		{"wrapped error response", errors.Join(errors.New("context"), notFound()), "404 Not Found"},
		{"rate limit", &gh.RateLimitError{
			Response: &http.Response{StatusCode: http.StatusForbidden},
			Message:  "API rate limit exceeded",
		}, "rate limit exceeded: API rate limit exceeded"},
		{"plain error", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
