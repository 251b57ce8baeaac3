// Where: internal/command/branding.go
// What: CLI naming helper.
// Why: Keep user-facing command names consistent when the binary is renamed.
package command

import (
	"os"
	"strings"

	"github.com/poruru/projectctx/internal/meta"
)

func cliName() string {
	if name := strings.TrimSpace(os.Getenv("CLI_CMD")); name != "" {
		return name
	}
	return meta.Slug
}
