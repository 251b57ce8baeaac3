// Where: cmd/projectctx/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/poruru/projectctx/internal/command"
	"github.com/poruru/projectctx/internal/infra/config"
	"github.com/poruru/projectctx/internal/infra/interaction"
)

var (
	stdin      = os.Stdin
	configPath = config.GlobalConfigPath
)

// buildDependencies constructs the runtime dependencies of the CLI.
// The process runner and publisher are created per command from flags.
func buildDependencies(out, errOut io.Writer) command.Dependencies {
	return command.Dependencies{
		Out:           out,
		ErrOut:        errOut,
		Prompter:      interaction.HuhPrompter{},
		IsInteractive: func() bool { return interaction.IsTerminal(stdin) },
		ConfigPath:    configPath,
		LookupEnv:     os.LookupEnv,
	}
}
