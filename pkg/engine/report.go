package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Report summarizes the results of a Diff.
type Report struct {
	Projects []Result `json:"projects"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) String() string {
	var clear, remote, local int
	for _, p := range r.Projects {
		if p.Clear() {
			clear++
		}
		remote += len(p.RemoteOnly)
		local += len(p.LocalOnly)
	}
	return fmt.Sprintf("Summary: %d projects (%d clear), %d issues only on GitHub, %d tasks only in Things",
		len(r.Projects), clear, remote, local)
}

// Clear reports whether every project is clear.
func (r *Report) Clear() bool {
	for _, p := range r.Projects {
		if !p.Clear() {
			return false
		}
	}
	return true
}

// WriteText renders the report for a terminal. Headers are styled only when
// w is a terminal that supports it.
func (r *Report) WriteText(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	clearStyle := renderer.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle := renderer.NewStyle().Bold(true)

	var b strings.Builder
	for _, p := range r.Projects {
		if p.Clear() {
			b.WriteString(clearStyle.Render(fmt.Sprintf("--- %s: Clear! ---", p.Project)))
			b.WriteString("\n")
			continue
		}

		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s: Only exists in the GitHub issues (%d) ---", p.Project, len(p.RemoteOnly))))
		b.WriteString("\n\n")
		for _, issue := range p.RemoteOnly {
			b.WriteString(issue.Title + "\n")
			b.WriteString(issue.URL + "  " + issue.Milestone + "\n")
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s: Only exists in the Things tasks (%d) ---", p.Project, len(p.LocalOnly))))
		b.WriteString("\n\n")
		for _, task := range p.LocalOnly {
			b.WriteString(task.Title + "\n")
			b.WriteString(task.URL + "\n")
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
