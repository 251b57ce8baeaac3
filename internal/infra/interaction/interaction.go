// Where: internal/infra/interaction/interaction.go
// What: Interactive primitives for choosing projects and TTY detection.
// Why: Keep prompting out of the command handlers and the evaluate use case.
package interaction

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a choice is needed but stdin is not a TTY.
var ErrNotInteractive = errors.New("interactive input is not available")

// SelectOption represents a single option in a selection menu.
type SelectOption struct {
	Label string // Display text
	Value string // Return value
}

// Prompter asks the user for free text or one of several values.
type Prompter interface {
	Input(title string, suggestions []string) (string, error)
	SelectValue(title string, options []SelectOption) (string, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ProjectOptions labels candidates relative to dir, keeping the full path as
// the value.
func ProjectOptions(dir string, candidates []string) []SelectOption {
	options := make([]SelectOption, 0, len(candidates))
	for _, candidate := range candidates {
		label := candidate
		if rel, err := filepath.Rel(dir, candidate); err == nil && !strings.HasPrefix(rel, "..") {
			label = rel
		}
		options = append(options, SelectOption{Label: label, Value: candidate})
	}
	return options
}

// SelectProject asks which of several project files to evaluate.
func SelectProject(p Prompter, dir string, candidates []string) (string, error) {
	if p == nil {
		return "", ErrNotInteractive
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return p.SelectValue("Select a project to evaluate", ProjectOptions(dir, candidates))
}

// AskTargetLocation prompts for the directory holding the evaluation targets,
// offering recently used values first.
func AskTargetLocation(p Prompter, suggestions []string) (string, error) {
	if p == nil {
		return "", ErrNotInteractive
	}
	value, err := p.Input("Target location (directory with the evaluation .targets file)", suggestions)
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" && len(suggestions) > 0 {
		value = suggestions[0]
	}
	return value, nil
}
