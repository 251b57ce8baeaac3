// Where: cmd/projectctx/main.go
// What: CLI entrypoint.
// Why: Execute projectctx commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/projectctx/internal/command"
)

func main() {
	os.Exit(command.Run(os.Args[1:], buildDependencies(os.Stdout, os.Stderr)))
}
