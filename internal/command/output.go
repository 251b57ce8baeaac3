// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/poruru/projectctx/internal/infra/ui"
)

func terminalUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewTerminalUI(out, emoji)
}
