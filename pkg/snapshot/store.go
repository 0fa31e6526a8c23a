// Package snapshot persists the remote issue snapshot as a YAML file.
//
// The file is a nested mapping of project name to issue number to issue
// entry. The on-disk entry type is kept separate from types.IssueRecord so
// the file format can change without touching the reconciliation code.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goblinsan/things-diff/pkg/types"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned by Load when the snapshot file does not exist.
	ErrNotFound = errors.New("snapshot not found")
	// ErrFormat is returned by Load when the file is not a valid snapshot.
	ErrFormat = errors.New("invalid snapshot format")
	// ErrIO is returned by Save when the snapshot cannot be written.
	ErrIO = errors.New("snapshot write failed")
)

const filePerms = 0o644

type entry struct {
	Title     string   `yaml:"title"`
	URL       string   `yaml:"url"`
	Milestone string   `yaml:"milestone"`
	Labels    []string `yaml:"labels"`
}

type document map[string]map[int]entry

// Save writes snap to path, replacing any previous content.
func Save(snap types.Snapshot, path string) error {
	doc := make(document, len(snap))
	for project, issues := range snap {
		entries := make(map[int]entry, len(issues))
		for number, issue := range issues {
			labels := issue.Labels
			if labels == nil {
				labels = []string{}
			}
			entries[number] = entry{
				Title:     issue.Title,
				URL:       issue.URL,
				Milestone: issue.Milestone,
				Labels:    labels,
			}
		}
		doc[project] = entries
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal snapshot: %v", ErrIO, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	// atomic.WriteFile leaves new files with temp-file permissions.
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return nil
}

// Load reads the snapshot stored at path.
func Load(path string) (types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: empty document", ErrFormat, path)
	}

	snap := make(types.Snapshot, len(doc))
	for project, entries := range doc {
		issues := make(types.Issues, len(entries))
		for number, e := range entries {
			labels := e.Labels
			if labels == nil {
				labels = []string{}
			}
			issues[number] = types.IssueRecord{
				Title:     e.Title,
				URL:       e.URL,
				Milestone: e.Milestone,
				Labels:    labels,
			}
		}
		snap[project] = issues
	}
	return snap, nil
}
