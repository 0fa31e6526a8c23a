package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goblinsan/things-diff/pkg/config"
	"github.com/goblinsan/things-diff/pkg/engine"
	"github.com/goblinsan/things-diff/pkg/snapshot"
	"github.com/goblinsan/things-diff/pkg/types"
)

type fakeSource struct {
	lines []string
	err   error
}

func (f fakeSource) Lines(context.Context) ([]string, error) {
	return f.lines, f.err
}

func testConfig(t *testing.T) *types.Config {
	t.Helper()
	return &types.Config{
		DataFile: filepath.Join(t.TempDir(), "data.yml"),
		Projects: []types.ProjectConfig{
			{Name: "org/repo", Milestones: types.MilestoneFilter{Exclude: []string{"Icebox"}}},
			{Name: "org/other"},
		},
	}
}

func TestRunDiff(t *testing.T) {
	cfg := testConfig(t)
	snap := types.Snapshot{
		"org/repo": types.Issues{
			1: {Title: "Tracked", Milestone: "v1"},
			2: {Title: "Untracked", Milestone: "v1"},
			3: {Title: "Frozen", Milestone: "Icebox"},
		},
	}
	if err := snapshot.Save(snap, cfg.DataFile); err != nil {
		t.Fatal(err)
	}
	source := fakeSource{lines: []string{
		"org/repo Tracked Issue #1 ",
		"org/repo Stale Issue #9 ",
		"org/repo Stale again Issue #9 ",
		"unrelated task",
	}}

	report, err := runDiff(context.Background(), cfg, source, engine.Options{})
	if err != nil {
		t.Fatalf("runDiff failed: %v", err)
	}

	if len(report.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(report.Projects))
	}
	repo := report.Projects[0]
	if len(repo.RemoteOnly) != 1 || repo.RemoteOnly[0].Number != 2 {
		t.Errorf("expected issue 2 remote-only, got %+v", repo.RemoteOnly)
	}
	if len(repo.LocalOnly) != 1 || repo.LocalOnly[0].Number != 9 || repo.LocalOnly[0].Title != "org/repo Stale again Issue #9 " {
		t.Errorf("expected last task 9 local-only, got %+v", repo.LocalOnly)
	}
	if !report.Projects[1].Clear() {
		t.Errorf("expected org/other to be clear, got %+v", report.Projects[1])
	}
	if len(report.Warnings) != 1 || report.Warnings[0] != "duplicated org/repo 9: org/repo Stale again Issue #9 " {
		t.Errorf("expected one duplicate warning, got %v", report.Warnings)
	}
}

func TestRunDiff_MissingSnapshot(t *testing.T) {
	cfg := testConfig(t)

	_, err := runDiff(context.Background(), cfg, fakeSource{}, engine.Options{})
	if !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected snapshot.ErrNotFound, got %v", err)
	}
}

func TestRunDiff_SourceError(t *testing.T) {
	cfg := testConfig(t)
	if err := snapshot.Save(types.Snapshot{}, cfg.DataFile); err != nil {
		t.Fatal(err)
	}

	_, err := runDiff(context.Background(), cfg, fakeSource{err: errors.New("things.sh not found")}, engine.Options{})
	if err == nil {
		t.Fatal("expected task source error")
	}
}

func TestSampleconfCommand(t *testing.T) {
	var buf bytes.Buffer
	sampleconfCmd.SetOut(&buf)
	t.Cleanup(func() { sampleconfCmd.SetOut(nil) })

	sampleconfCmd.Run(sampleconfCmd, nil)

	if buf.String() != config.Sample {
		t.Errorf("expected sample config, got %q", buf.String())
	}
}

func TestWriteReport_Text(t *testing.T) {
	report := &engine.Report{Projects: []engine.Result{
		engine.Reconcile("org/repo", types.Issues{}, types.Tasks{}),
	}}

	var out, errOut bytes.Buffer
	if err := writeReport(&out, &errOut, report, false); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}
	if out.String() != "--- org/repo: Clear! ---\n" {
		t.Errorf("unexpected report %q", out.String())
	}
	if errOut.String() != report.String()+"\n" {
		t.Errorf("expected summary on errOut, got %q", errOut.String())
	}
}

func TestWriteReport_JSON(t *testing.T) {
	report := &engine.Report{Projects: []engine.Result{
		engine.Reconcile("org/repo", types.Issues{4: {Title: "Remote"}}, nil),
	}}

	var out, errOut bytes.Buffer
	if err := writeReport(&out, &errOut, report, true); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	var decoded engine.Report
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, out.String())
	}
	if len(decoded.Projects) != 1 || decoded.Projects[0].Status != engine.StatusDiverged {
		t.Errorf("unexpected report %+v", decoded)
	}
	if !strings.HasPrefix(errOut.String(), "Summary: 1 projects (0 clear)") {
		t.Errorf("unexpected summary %q", errOut.String())
	}
}

func TestCheckClear(t *testing.T) {
	allClear := &engine.Report{Projects: []engine.Result{engine.Reconcile("org/repo", nil, nil)}}
	diverged := &engine.Report{Projects: []engine.Result{engine.Reconcile("org/repo", nil, types.Tasks{1: {}})}}

	if err := checkClear(allClear, true); err != nil {
		t.Errorf("clear report should pass, got %v", err)
	}
	if err := checkClear(diverged, false); err != nil {
		t.Errorf("without --exit-code differences should pass, got %v", err)
	}
	if err := checkClear(diverged, true); !errors.Is(err, errNotClear) {
		t.Errorf("expected errNotClear, got %v", err)
	}
}
