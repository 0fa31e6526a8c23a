package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const perPage = 100

// Client wraps both the REST API client (go-github) and GraphQL client (githubv4)
type Client struct {
	REST    *github.Client
	GraphQL *githubv4.Client
}

// NewClient creates a new GitHub client with both REST and GraphQL capabilities
func NewClient(token string) *Client {
	var httpClient *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = http.DefaultClient
	}

	return &Client{
		REST:    github.NewClient(httpClient),
		GraphQL: githubv4.NewClient(httpClient),
	}
}

// GetAuthenticatedUser returns information about the authenticated user
func (c *Client) GetAuthenticatedUser(ctx context.Context) (*github.User, error) {
	user, _, err := c.REST.Users.Get(ctx, "")
	return user, err
}

// ViewerLogin returns the login of the token owner.
func (c *Client) ViewerLogin(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login githubv4.String
		}
	}
	if err := c.GraphQL.Query(ctx, &query, nil); err != nil {
		return "", err
	}
	return string(query.Viewer.Login), nil
}

// ListAssignedIssues returns every open issue in repository ("owner/repo")
// assigned to assignee, following pagination. An empty assignee lists all
// open issues.
func (c *Client) ListAssignedIssues(ctx context.Context, repository, assignee string) ([]*github.Issue, error) {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		Assignee:    assignee,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.Issue
	for {
		issues, resp, err := c.REST.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s: %w", repository, err)
		}
		all = append(all, issues...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// SplitRepository splits "owner/repo" into its parts.
func SplitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s", repository)
	}
	return parts[0], parts[1], nil
}
