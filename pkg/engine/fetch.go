package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ghclient "github.com/goblinsan/things-diff/pkg/github"
	"github.com/goblinsan/things-diff/pkg/types"
	gogithub "github.com/google/go-github/v66/github"
)

// GitHubClient defines the interface for GitHub operations needed by Fetch.
type GitHubClient interface {
	ViewerLogin(ctx context.Context) (string, error)
	ListAssignedIssues(ctx context.Context, repository, assignee string) ([]*gogithub.Issue, error)
}

// Ensure *github.Client satisfies the interface at compile time.
var _ GitHubClient = (*ghclient.Client)(nil)

// FetchOptions configures Fetch.
type FetchOptions struct {
	// Progress receives one "Loading: <project>" line per project.
	Progress io.Writer
	Logger   *slog.Logger
}

// Fetch builds a snapshot of the issues assigned to cfg.User in every
// configured project. When cfg.User is empty the token owner is used.
func Fetch(ctx context.Context, client GitHubClient, cfg *types.Config, opts FetchOptions) (types.Snapshot, error) {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	assignee := cfg.User
	if assignee == "" {
		login, err := client.ViewerLogin(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve authenticated user: %w", err)
		}
		opts.Logger.Debug("using authenticated user as assignee", "user", login)
		assignee = login
	}

	snap := make(types.Snapshot, len(cfg.Projects))
	for _, project := range cfg.Projects {
		fmt.Fprintf(opts.Progress, "Loading: %s\n", project.Name)

		issues, err := client.ListAssignedIssues(ctx, project.Name, assignee)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues for %s: %w", project.Name, err)
		}

		records := make(types.Issues, len(issues))
		for _, issue := range issues {
			records[issue.GetNumber()] = IssueRecordFrom(issue)
		}
		opts.Logger.Debug("fetched issues", "project", project.Name, "count", len(records))
		snap[project.Name] = records
	}
	return snap, nil
}

// IssueRecordFrom converts an API issue into a snapshot record.
func IssueRecordFrom(issue *gogithub.Issue) types.IssueRecord {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	return types.IssueRecord{
		Title:     issue.GetTitle(),
		URL:       issue.GetHTMLURL(),
		Milestone: issue.GetMilestone().GetTitle(),
		Labels:    labels,
	}
}
