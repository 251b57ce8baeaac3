// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep error formatting and exit codes consistent across commands.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/poruru/projectctx/internal/infra/discovery"
	"github.com/poruru/projectctx/internal/infra/msbuild"
)

// exitWithError prints an error message and returns exit code 1.
func exitWithError(out io.Writer, err error) int {
	terminalUI(out, true).Error(err.Error())
	return 1
}

// exitWithSuggestion prints a warning followed by next steps.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	u := terminalUI(out, true)
	u.Warn(message)
	if len(suggestions) > 0 {
		u.Info("")
		u.Info("💡 Next steps:")
		for _, s := range suggestions {
			u.Info(fmt.Sprintf("   - %s", s))
		}
	}
	return 1
}

// exitWithEvaluateError maps evaluation failures to targeted output.
func exitWithEvaluateError(out io.Writer, err error) int {
	var failed *msbuild.CreationFailedError
	if errors.As(err, &failed) {
		u := terminalUI(out, true)
		u.Error(fmt.Sprintf("Failed to get Project Context for %s. (exit code %d)", failed.ProjectPath, failed.ExitCode))
		u.Lines("stdout", failed.Stdout)
		u.Lines("stderr", failed.Stderr)
		return 1
	}

	var ambiguous *discovery.AmbiguousProjectError
	if errors.As(err, &ambiguous) {
		return exitWithSuggestion(out, err.Error(), []string{
			fmt.Sprintf("pass the project explicitly: %s evaluate %s", cliName(), ambiguous.Candidates[0]),
		})
	}

	switch {
	case errors.Is(err, msbuild.ErrInvalidArgument):
		return exitWithSuggestion(out, err.Error(), []string{
			"pass -t/--target <dir> with the evaluation .targets file",
			fmt.Sprintf("or set defaults.target_location in %s config", cliName()),
		})
	case errors.Is(err, discovery.ErrNoProject):
		return exitWithSuggestion(out, err.Error(), []string{
			fmt.Sprintf("run %s evaluate <path-to-project-file>", cliName()),
		})
	case errors.Is(err, msbuild.ErrRunnerFailed):
		return exitWithSuggestion(out, err.Error(), []string{
			"install the .NET SDK or pass --tool",
			"use --runner docker to evaluate inside the SDK image",
		})
	}
	return exitWithError(out, err)
}
