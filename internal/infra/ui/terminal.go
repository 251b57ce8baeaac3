// Where: internal/infra/ui/terminal.go
// What: UserInterface used by commands and the evaluate use case.
// Why: Give non-command layers an output surface without depending on io details.
package ui

import (
	"fmt"
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes the high-level output helpers.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Error(msg string)
	Block(emoji, title string, rows []KeyValue)
	Lines(title string, lines []string)
}

// NewTerminalUI returns a UserInterface writing to out.
func NewTerminalUI(out io.Writer, emojiEnabled bool) UserInterface {
	return terminalUI{out: out, console: NewWithEmoji(out, emojiEnabled)}
}

type terminalUI struct {
	out     io.Writer
	console *Console
}

func (u terminalUI) Info(msg string)    { u.console.Info(msg) }
func (u terminalUI) Warn(msg string)    { u.console.Warn(msg) }
func (u terminalUI) Success(msg string) { u.console.Success(msg) }
func (u terminalUI) Error(msg string)   { u.console.Error(msg) }

func (u terminalUI) Block(emoji, title string, rows []KeyValue) {
	u.console.BlockStart(emoji, title)
	for _, kv := range rows {
		u.console.Item(kv.Key, kv.Value)
	}
	u.console.BlockEnd()
}

// Lines prints captured tool output under a title, indented, skipping the
// block entirely when there is nothing to show.
func (u terminalUI) Lines(title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(u.out, "%s:\n", title)
	for _, line := range lines {
		u.console.ItemPlain(line)
	}
}
