package engine

import (
	"sort"

	"github.com/goblinsan/things-diff/pkg/filter"
	"github.com/goblinsan/things-diff/pkg/types"
)

// Status describes the outcome of reconciling one project.
type Status string

const (
	// StatusClear means both sides hold the same issue numbers.
	StatusClear Status = "clear"
	// StatusDiverged means at least one side holds an issue the other lacks.
	StatusDiverged Status = "diverged"
)

// RemoteIssue is an issue that only exists in the tracker.
type RemoteIssue struct {
	Number int `json:"number"`
	types.IssueRecord
}

// LocalTask is a task whose issue does not exist in the filtered tracker issues.
type LocalTask struct {
	Number int `json:"number"`
	types.TaskRecord
}

// Result is the reconciliation of one project.
type Result struct {
	Project    string        `json:"project"`
	Status     Status        `json:"status"`
	RemoteOnly []RemoteIssue `json:"remote_only"`
	LocalOnly  []LocalTask   `json:"local_only"`
}

// Clear reports whether the project needs no attention.
func (r Result) Clear() bool {
	return r.Status == StatusClear
}

// Options configures Diff.
type Options struct {
	// IgnoreFilter skips milestone filtering for every project.
	IgnoreFilter bool
}

// Reconcile computes which issue numbers exist on only one side. Both result
// lists are ordered by ascending issue number.
func Reconcile(project string, issues types.Issues, tasks types.Tasks) Result {
	result := Result{
		Project:    project,
		RemoteOnly: []RemoteIssue{},
		LocalOnly:  []LocalTask{},
	}

	for _, number := range sortedKeys(issues.Keys()) {
		if _, ok := tasks[number]; !ok {
			result.RemoteOnly = append(result.RemoteOnly, RemoteIssue{Number: number, IssueRecord: issues[number]})
		}
	}
	for _, number := range sortedKeys(tasks.Keys()) {
		if _, ok := issues[number]; !ok {
			result.LocalOnly = append(result.LocalOnly, LocalTask{Number: number, TaskRecord: tasks[number]})
		}
	}

	result.Status = StatusDiverged
	if len(result.RemoteOnly) == 0 && len(result.LocalOnly) == 0 {
		result.Status = StatusClear
	}
	return result
}

// Diff reconciles every configured project, in configuration order. Projects
// missing from the snapshot or the task set are treated as empty.
func Diff(snap types.Snapshot, tasks map[string]types.Tasks, projects []types.ProjectConfig, opts Options) *Report {
	report := &Report{Projects: make([]Result, 0, len(projects))}
	for _, project := range projects {
		issues := snap.Project(project.Name)
		if !opts.IgnoreFilter {
			issues = filter.Milestones(issues, project.Milestones.Include, project.Milestones.Exclude)
		}
		report.Projects = append(report.Projects, Reconcile(project.Name, issues, tasks[project.Name]))
	}
	return report
}

func sortedKeys(keys []int) []int {
	sort.Ints(keys)
	return keys
}
