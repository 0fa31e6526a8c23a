package types

// IssueRecord is one remote issue as stored in the snapshot.
type IssueRecord struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Milestone string   `json:"milestone"`
	Labels    []string `json:"labels"`
}

// TaskRecord is one local task that references a remote issue.
type TaskRecord struct {
	// Title is the raw task line, verbatim.
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Issues indexes a project's issues by issue number.
type Issues map[int]IssueRecord

// Tasks indexes a project's tasks by issue number.
type Tasks map[int]TaskRecord

// Snapshot maps a project name to its issues.
type Snapshot map[string]Issues

// Project returns the issues recorded for name. A project missing from the
// snapshot yields an empty, non-nil mapping.
func (s Snapshot) Project(name string) Issues {
	if issues, ok := s[name]; ok && issues != nil {
		return issues
	}
	return Issues{}
}

// Keys returns the issue numbers in the mapping.
func (i Issues) Keys() []int {
	keys := make([]int, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	return keys
}

// Keys returns the issue numbers in the mapping.
func (t Tasks) Keys() []int {
	keys := make([]int, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	return keys
}
