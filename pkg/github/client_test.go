package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shurcooL/githubv4"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c := NewClient("")
	base, err := url.Parse(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.REST.BaseURL = base
	c.GraphQL = githubv4.NewEnterpriseClient(ts.URL+"/graphql", ts.Client())
	return c
}

func TestListAssignedIssues_Paginates(t *testing.T) {
	var requests int
	var c *Client
	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/repos/org/repo/issues" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("assignee"); got != "alice" {
			t.Errorf("expected assignee alice, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			next := fmt.Sprintf("<%srepos/org/repo/issues?page=2>; rel=\"next\"", c.REST.BaseURL.String())
			w.Header().Set("Link", next)
			json.NewEncoder(w).Encode([]map[string]any{
				{"number": 1, "title": "One", "html_url": "https://github.com/org/repo/issues/1"},
			})
		case "2":
			json.NewEncoder(w).Encode([]map[string]any{
				{
					"number":    2,
					"title":     "Two",
					"html_url":  "https://github.com/org/repo/issues/2",
					"milestone": map[string]any{"title": "v1"},
					"labels":    []map[string]any{{"name": "bug"}},
				},
			})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	issues, err := c.ListAssignedIssues(context.Background(), "org/repo", "alice")
	if err != nil {
		t.Fatalf("ListAssignedIssues failed: %v", err)
	}
	if requests != 2 {
		t.Errorf("expected 2 requests, got %d", requests)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[1].GetMilestone().GetTitle() != "v1" {
		t.Errorf("expected milestone v1, got %q", issues[1].GetMilestone().GetTitle())
	}
	if len(issues[1].Labels) != 1 || issues[1].Labels[0].GetName() != "bug" {
		t.Errorf("unexpected labels %v", issues[1].Labels)
	}
}

func TestListAssignedIssues_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	if _, err := c.ListAssignedIssues(context.Background(), "org/repo", ""); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestListAssignedIssues_InvalidRepository(t *testing.T) {
	c := NewClient("")
	if _, err := c.ListAssignedIssues(context.Background(), "not-a-repo", ""); err == nil {
		t.Fatal("expected error for invalid repository")
	}
}

func TestViewerLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"viewer":{"login":"octocat"}}}`))
	})

	login, err := c.ViewerLogin(context.Background())
	if err != nil {
		t.Fatalf("ViewerLogin failed: %v", err)
	}
	if login != "octocat" {
		t.Errorf("expected octocat, got %q", login)
	}
}

func TestSplitRepository(t *testing.T) {
	tests := []struct {
		in      string
		owner   string
		repo    string
		wantErr bool
	}{
		{in: "org/repo", owner: "org", repo: "repo"},
		{in: "org", wantErr: true},
		{in: "org/", wantErr: true},
		{in: "/repo", wantErr: true},
		{in: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		owner, repo, err := SplitRepository(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("%q: got %s/%s", tt.in, owner, repo)
		}
	}
}
