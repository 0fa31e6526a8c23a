package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultCommand lists every task in Things.
const DefaultCommand = "things.sh all"

// Source runs an external command and returns its output as task lines.
type Source struct {
	Command string
	Logger  *slog.Logger
}

// NewSource returns a Source for command, falling back to DefaultCommand.
func NewSource(command string, logger *slog.Logger) *Source {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{Command: command, Logger: logger}
}

// Lines runs the command through sh, so quoting, pipes and variables work as
// they would at a prompt, and returns stdout split on line breaks.
func (s *Source) Lines(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.Command) == "" {
		return nil, errors.New("task command is empty")
	}

	s.Logger.Debug("running task command", "command", s.Command)
	cmd := exec.CommandContext(ctx, "sh", "-c", s.Command)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("task command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("task command failed: %w", err)
	}

	return SplitLines(output), nil
}

// SplitLines splits command output on LF or CRLF line endings. A trailing
// line break does not produce an empty last line.
func SplitLines(output []byte) []string {
	text := strings.TrimSuffix(string(output), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
