// Where: internal/command/evaluate.go
// What: evaluate command adapter.
// Why: Resolve flags, env, and config into an evaluate request and run it.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
	"github.com/poruru/projectctx/internal/domain/report"
	"github.com/poruru/projectctx/internal/infra/config"
	"github.com/poruru/projectctx/internal/infra/discovery"
	"github.com/poruru/projectctx/internal/infra/interaction"
	"github.com/poruru/projectctx/internal/infra/msbuild"
	"github.com/poruru/projectctx/internal/infra/publish"
	"github.com/poruru/projectctx/internal/infra/ui"
	"github.com/poruru/projectctx/internal/logfields"
	"github.com/poruru/projectctx/internal/usecase/evaluate"
)

// EvaluateCmd defines the evaluate command flags.
type EvaluateCmd struct {
	Project       string        `arg:"" optional:"" help:"Project file or directory (default: current directory)"`
	Target        string        `short:"t" name:"target" help:"Directory containing the evaluation .targets file"`
	Configuration string        `short:"c" help:"Build configuration (default: Debug)"`
	Format        string        `short:"f" help:"Output format (json/yaml/text)"`
	Output        string        `short:"o" help:"Write output to a file instead of stdout"`
	Runner        string        `name:"runner" help:"Where to run msbuild (local/docker)"`
	Image         string        `name:"image" help:"SDK image for --runner docker"`
	Tool          string        `name:"tool" help:"Build tool command (default: \"dotnet msbuild\")"`
	Timeout       time.Duration `name:"timeout" help:"Abort the build tool after this duration (e.g. 2m)"`
	DryRun        bool          `name:"dry-run" help:"Print the build tool command without running it"`
	Publish       bool          `name:"publish" help:"Upload the context to S3 and index it in DynamoDB"`
	Bucket        string        `name:"bucket" help:"S3 bucket for --publish"`
	Table         string        `name:"table" help:"DynamoDB table for the publish index"`
	Endpoint      string        `name:"endpoint" help:"Custom S3/DynamoDB endpoint (e.g. a local emulator)"`
	Region        string        `name:"region" help:"AWS region for --publish"`
}

// evaluateInputs is the request after flags > env > config > defaults.
type evaluateInputs struct {
	Request evaluate.Request
	Runner  RunnerOptions
	Timeout time.Duration
}

func runEvaluate(cli CLI, deps Dependencies) int {
	errOut := deps.ErrOut
	userInterface := terminalUI(errOut, !cli.NoEmoji)
	logger := slog.Default()

	cfgPath, err := deps.ConfigPath()
	if err != nil {
		return exitWithError(errOut, err)
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return exitWithError(errOut, err)
	}
	effective := config.ApplyEnv(cfg, deps.LookupEnv)

	inputs, err := resolveEvaluateInputs(cli, effective, deps, userInterface)
	if err != nil {
		return exitWithEvaluateError(errOut, err)
	}
	inputs.Runner.ErrOut = errOut
	inputs.Runner.Logger = logger

	runner, closer, err := deps.NewRunner(inputs.Runner)
	if err != nil {
		return exitWithError(errOut, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	publisher := deps.Publisher
	if publisher == nil && inputs.Request.Publish {
		publisher = publish.New(logger)
	}

	workflow := evaluate.NewWorkflow(runner, deps.Out, userInterface)
	workflow.Logger = logger
	workflow.Publisher = publisher
	workflow.TempRoot = deps.TempRoot
	workflow.Resolve = projectResolver(deps, userInterface)
	workflow.Record = func(projectPath string) error {
		return recordProject(cfgPath, projectPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if inputs.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inputs.Timeout)
		defer cancel()
	}

	logger.Debug("evaluate inputs",
		logfields.Runner(normalizeRunnerKind(inputs.Runner.Kind)),
		logfields.Configuration(inputs.Request.Configuration),
		logfields.TargetDir(inputs.Request.TargetLocation),
	)
	result, err := workflow.Run(ctx, inputs.Request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return exitWithError(errOut, fmt.Errorf("build tool timed out after %s: %w", inputs.Timeout, err))
		}
		return exitWithEvaluateError(errOut, err)
	}
	if result.Context != nil && strings.TrimSpace(inputs.Request.OutputPath) != "" {
		userInterface.Block("📦", "Project context", summaryRows(result.ProjectPath, result.Context))
	}
	return 0
}

func resolveEvaluateInputs(
	cli CLI,
	cfg config.GlobalConfig,
	deps Dependencies,
	userInterface ui.UserInterface,
) (evaluateInputs, error) {
	cmd := cli.Evaluate
	defaults := cfg.Defaults

	format, err := report.ParseFormat(firstNonEmpty(cmd.Format, defaults.Format))
	if err != nil {
		return evaluateInputs{}, err
	}

	target := firstNonEmpty(cmd.Target, defaults.TargetLocation)
	if target == "" && !cmd.DryRun && deps.Prompter != nil && deps.IsInteractive() {
		target, err = interaction.AskTargetLocation(deps.Prompter, nil)
		if err != nil {
			return evaluateInputs{}, err
		}
	}

	var env []string
	if tool := strings.TrimSpace(firstNonEmpty(cmd.Tool, defaults.Tool)); tool == "" || msbuild.ParseTool(tool).Name == "dotnet" {
		env = append(env, "DOTNET_CLI_TELEMETRY_OPTOUT=1")
	}

	req := evaluate.Request{
		Project:        cmd.Project,
		TargetLocation: target,
		Configuration:  firstNonEmpty(cmd.Configuration, defaults.Configuration),
		Tool:           msbuild.ParseTool(firstNonEmpty(cmd.Tool, defaults.Tool)),
		Env:            env,
		Format:         format,
		OutputPath:     cmd.Output,
		DryRun:         cmd.DryRun,
		Publish:        cmd.Publish,
		PublishTo: publish.Settings{
			Bucket:   firstNonEmpty(cmd.Bucket, cfg.Publish.Bucket),
			Table:    firstNonEmpty(cmd.Table, cfg.Publish.Table),
			Endpoint: firstNonEmpty(cmd.Endpoint, cfg.Publish.Endpoint),
			Region:   firstNonEmpty(cmd.Region, cfg.Publish.Region),
		},
	}
	if req.Publish && strings.TrimSpace(req.PublishTo.Bucket) == "" {
		return evaluateInputs{}, publish.ErrBucketRequired
	}
	if userInterface != nil && cmd.Publish && cmd.DryRun {
		userInterface.Warn("--publish is ignored with --dry-run")
	}

	return evaluateInputs{
		Request: req,
		Runner: RunnerOptions{
			Kind:    firstNonEmpty(cmd.Runner, defaults.Runner),
			Image:   firstNonEmpty(cmd.Image, defaults.DockerImage),
			Verbose: cli.Verbose,
		},
		Timeout: cmd.Timeout,
	}, nil
}

// projectResolver falls back to an interactive choice when a directory holds
// several project files.
func projectResolver(deps Dependencies, userInterface ui.UserInterface) evaluate.ProjectResolver {
	return func(target string) (string, error) {
		path, err := discovery.FindProjectFile(target)
		var ambiguous *discovery.AmbiguousProjectError
		if !errors.As(err, &ambiguous) || deps.Prompter == nil || !deps.IsInteractive() {
			return path, err
		}
		userInterface.Info(fmt.Sprintf("%d project files found in %s", len(ambiguous.Candidates), ambiguous.Dir))
		return interaction.SelectProject(deps.Prompter, ambiguous.Dir, ambiguous.Candidates)
	}
}

func recordProject(cfgPath, projectPath string) error {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	cfg.RecordProject(projectPath)
	return config.SaveGlobalConfig(cfgPath, cfg)
}

func summaryRows(projectPath string, ctx *projectmodel.ProjectContext) []ui.KeyValue {
	rows := []ui.KeyValue{
		{Key: "Project", Value: filepath.Base(projectPath)},
		{Key: "Configuration", Value: ctx.Configuration},
		{Key: "Framework", Value: ctx.TargetFramework},
		{Key: "Packages", Value: len(ctx.PackageNames())},
	}
	if ctx.AssemblyName != "" {
		rows = append(rows, ui.KeyValue{Key: "Assembly", Value: ctx.AssemblyName})
	}
	return rows
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
