package tasks

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/goblinsan/things-diff/pkg/types"
)

// issueToken matches an issue reference such as " Issue #42 " inside a task line.
var issueToken = regexp.MustCompile(`\sIssue #(\d+)\s`)

// DuplicateKey records a (project, number) pair seen more than once while parsing.
type DuplicateKey struct {
	Project string
	Number  int
	// Line is the later line, which replaced the earlier entry.
	Line string
}

func (d DuplicateKey) String() string {
	return fmt.Sprintf("duplicated %s %d: %s", d.Project, d.Number, d.Line)
}

// IssueURL returns the GitHub web URL of issue number in project.
func IssueURL(project string, number int) string {
	return "https://github.com/" + project + "/issues/" + strconv.Itoa(number)
}

// Parse turns raw task lines into tasks keyed by project and issue number.
//
// Every name in projects gets an entry in the result, even when no line
// references it. A line is assigned to each project whose name it contains,
// so names that are substrings of each other both collect the line. When a
// (project, number) pair repeats, a warning is logged and the later line wins.
func Parse(lines []string, projects []string, logger *slog.Logger) (map[string]types.Tasks, []DuplicateKey) {
	if logger == nil {
		logger = slog.Default()
	}

	result := make(map[string]types.Tasks, len(projects))
	names := make([]string, 0, len(projects))
	for _, name := range projects {
		if _, ok := result[name]; ok {
			continue
		}
		result[name] = types.Tasks{}
		names = append(names, name)
	}

	var dups []DuplicateKey
	for _, line := range lines {
		for _, name := range names {
			if !strings.Contains(line, name) {
				continue
			}
			m := issueToken.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			number, err := strconv.Atoi(m[1])
			if err != nil {
				// Digit runs beyond int range cannot be GitHub issue numbers.
				logger.Warn("skipping task with unparsable issue number", "project", name, "line", line, "error", err)
				continue
			}

			if _, ok := result[name][number]; ok {
				dup := DuplicateKey{Project: name, Number: number, Line: line}
				logger.Warn("duplicated task for issue", "project", name, "number", number, "line", line)
				dups = append(dups, dup)
			}
			result[name][number] = types.TaskRecord{
				Title: line,
				URL:   IssueURL(name, number),
			}
		}
	}

	return result, dups
}
