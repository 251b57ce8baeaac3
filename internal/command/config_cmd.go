// Where: internal/command/config_cmd.go
// What: config show/path commands.
// Why: Let users see which defaults evaluate will use.
package command

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/poruru/projectctx/internal/infra/config"
)

func runConfigPath(_ CLI, deps Dependencies) int {
	path, err := deps.ConfigPath()
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	fmt.Fprintln(deps.Out, path)
	return 0
}

// runConfigShow prints the file config with PROJECTCTX_* overrides applied.
func runConfigShow(_ CLI, deps Dependencies) int {
	path, err := deps.ConfigPath()
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	payload, err := yaml.Marshal(config.ApplyEnv(cfg, deps.LookupEnv))
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	fmt.Fprintf(deps.Out, "# %s\n", path)
	_, _ = deps.Out.Write(payload)
	return 0
}
