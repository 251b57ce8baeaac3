// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru/projectctx/internal/infra/config"
	"github.com/poruru/projectctx/internal/infra/interaction"
	"github.com/poruru/projectctx/internal/usecase/evaluate"
	"github.com/poruru/projectctx/internal/version"
)

// Dependencies holds the collaborators injected into command handlers so
// tests can replace the process runner, prompts, and storage.
type Dependencies struct {
	Out           io.Writer
	ErrOut        io.Writer
	Prompter      interaction.Prompter
	IsInteractive func() bool
	ConfigPath    func() (string, error)
	LookupEnv     func(string) (string, bool)
	NewRunner     RunnerFactory
	Publisher     evaluate.Publisher
	TempRoot      string
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile  string     `name:"env-file" help:"Path to .env file (default: ./.env when present)"`
	LogLevel string     `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug/info/warn/error)"`
	Verbose  bool       `short:"v" help:"Verbose output (debug logs and tool output)"`
	NoEmoji  bool       `name:"no-emoji" help:"Disable emoji output"`
	Evaluate EvaluateCmd `cmd:"" help:"Evaluate a project and print its context"`
	Config   ConfigCmd  `cmd:"" help:"Inspect the global configuration"`
	Version  VersionCmd `cmd:"" help:"Show version information"`
}

type (
	ConfigCmd struct {
		Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
		Path ConfigPathCmd `cmd:"" help:"Print the configuration file path"`
	}

	ConfigShowCmd struct{}
	ConfigPathCmd struct{}
	VersionCmd    struct{}
)

// Run is the main entry point for CLI command execution. It returns the
// process exit code: 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	exited := false
	exitCode := 0
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Evaluate .NET project metadata through msbuild."),
		kong.Writers(out, deps.ErrOut),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	ctx, err := parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		return handleParseError(err, deps.ErrOut)
	}

	userInterface := terminalUI(deps.ErrOut, !cli.NoEmoji)
	loadEnvFile(cli.EnvFile, userInterface.Warn)

	logger, err := newLogger(deps.ErrOut, cli.LogLevel, cli.Verbose)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	setDefaultLogger(logger)

	command := ctx.Command()
	if code, handled := dispatchCommand(command, cli, deps); handled {
		return code
	}

	userInterface.Warn("unknown command")
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.ConfigPath == nil {
		deps.ConfigPath = config.GlobalConfigPath
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.NewRunner == nil {
		deps.NewRunner = defaultRunnerFactory
	}
	if deps.IsInteractive == nil {
		deps.IsInteractive = func() bool { return interaction.IsTerminal(os.Stdin) }
	}
	return deps
}

// loadEnvFile loads an explicit env file, or ./.env when it exists.
func loadEnvFile(path string, warn func(string)) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	handlers := map[string]commandHandler{
		"evaluate":           runEvaluate,
		"evaluate <project>": runEvaluate,
		"config show":        runConfigShow,
		"config path":        runConfigPath,
		"version":            runVersion,
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, deps), true
	}
	return 1, false
}

func runVersion(_ CLI, deps Dependencies) int {
	fmt.Fprintln(deps.Out, version.GetVersion())
	return 0
}

// runNoArgs prints a short usage hint instead of kong's error.
func runNoArgs(out io.Writer) int {
	u := terminalUI(out, false)
	cmd := cliName()
	u.Info("Usage:")
	u.Info(fmt.Sprintf("  %s evaluate [PROJECT] -t <target-location> [-c <configuration>] [-f json|yaml|text]", cmd))
	u.Info("")
	u.Info(fmt.Sprintf("Try: %s --help", cmd))
	return 0
}

// handleParseError turns common flag mistakes into hints.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") || strings.Contains(msg, "expected a value") {
		cmd := cliName()
		switch {
		case strings.Contains(msg, "--target"):
			return exitWithSuggestion(out, "`-t/--target` expects the directory holding the evaluation targets.",
				[]string{fmt.Sprintf("%s evaluate ./App.csproj -t ./build/targets", cmd)})
		case strings.Contains(msg, "--configuration"):
			return exitWithSuggestion(out, "`-c/--configuration` expects a build configuration name.",
				[]string{fmt.Sprintf("%s evaluate -c Release", cmd)})
		case strings.Contains(msg, "--env-file"):
			return exitWithSuggestion(out, "`--env-file` expects a file path.",
				[]string{fmt.Sprintf("%s --env-file .env.ci evaluate", cmd)})
		}
	}
	return exitWithError(out, err)
}
