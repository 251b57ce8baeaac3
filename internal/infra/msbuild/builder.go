// Where: internal/infra/msbuild/builder.go
// What: Project context builder backed by the msbuild evaluation target.
// Why: Turn a project file into a ProjectContext by shelling out to the build tool.
package msbuild

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
	"github.com/poruru/projectctx/internal/infra/process"
	"github.com/poruru/projectctx/internal/logfields"
	"github.com/poruru/projectctx/internal/meta"
)

// Tool is the executable (plus leading arguments) that hosts msbuild.
type Tool struct {
	Name string
	Args []string
}

// DefaultTool runs msbuild through the dotnet host.
func DefaultTool() Tool {
	return Tool{Name: meta.DefaultTool, Args: []string{meta.DefaultToolSubcmd}}
}

// ParseTool splits a command string such as "dotnet msbuild" into a Tool.
// An empty string yields DefaultTool.
func ParseTool(value string) Tool {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return DefaultTool()
	}
	return Tool{Name: fields[0], Args: fields[1:]}
}

// Builder evaluates one project. Its inputs are fixed at construction.
type Builder struct {
	projectPath    string
	targetLocation string
	configuration  string

	runner   process.Runner
	tool     Tool
	tempRoot string
	env      []string
	logger   *slog.Logger
}

// Option customizes a Builder.
type Option func(*Builder)

// WithConfiguration sets the build configuration. Blank values keep "Debug".
func WithConfiguration(configuration string) Option {
	return func(b *Builder) {
		if trimmed := strings.TrimSpace(configuration); trimmed != "" {
			b.configuration = trimmed
		}
	}
}

// WithRunner injects the process runner.
func WithRunner(runner process.Runner) Option {
	return func(b *Builder) {
		if runner != nil {
			b.runner = runner
		}
	}
}

// WithTool overrides the build tool executable.
func WithTool(tool Tool) Option {
	return func(b *Builder) {
		if strings.TrimSpace(tool.Name) != "" {
			b.tool = tool
		}
	}
}

// WithTempRoot sets the directory under which per-build temp dirs are made.
func WithTempRoot(dir string) Option {
	return func(b *Builder) { b.tempRoot = dir }
}

// WithEnv appends KEY=VALUE entries to the tool's environment.
func WithEnv(env ...string) Option {
	return func(b *Builder) { b.env = append(b.env, env...) }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder validates the required inputs. Relative paths are resolved
// against the working directory so the command stays valid from any cwd.
func NewBuilder(projectPath, targetLocation string, opts ...Option) (*Builder, error) {
	if strings.TrimSpace(projectPath) == "" {
		return nil, fmt.Errorf("%w: projectPath is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(targetLocation) == "" {
		return nil, fmt.Errorf("%w: targetLocation is required", ErrInvalidArgument)
	}
	project, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("%w: projectPath: %w", ErrInvalidArgument, err)
	}
	target, err := filepath.Abs(targetLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: targetLocation: %w", ErrInvalidArgument, err)
	}

	b := &Builder{
		projectPath:    project,
		targetLocation: target,
		configuration:  meta.DefaultConfiguration,
		runner:         process.ExecRunner{},
		tool:           DefaultTool(),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) ProjectPath() string    { return b.projectPath }
func (b *Builder) TargetLocation() string { return b.targetLocation }
func (b *Builder) Configuration() string  { return b.configuration }

// Command returns the invocation that writes the project context to
// outputFile.
func (b *Builder) Command(outputFile string) process.Command {
	props := strings.Join([]string{
		"OutputFile=" + outputFile,
		"CodeGenerationTargetLocation=" + b.targetLocation,
		"Configuration=" + b.configuration,
	}, ";")

	args := append([]string{}, b.tool.Args...)
	args = append(args,
		b.projectPath,
		"/t:"+meta.EvaluateTarget,
		"/p:"+props,
	)
	return process.Command{
		Name:       b.tool.Name,
		Args:       args,
		Dir:        filepath.Dir(b.projectPath),
		Env:        b.env,
		SharedDirs: []string{filepath.Dir(outputFile), b.targetLocation},
	}
}

// Build runs the evaluation target and decodes its output as a ProjectContext.
func (b *Builder) Build(ctx context.Context) (*projectmodel.ProjectContext, error) {
	var out *projectmodel.ProjectContext
	err := b.evaluate(ctx, func(data []byte) error {
		decoded, err := projectmodel.Decode(data)
		if err != nil {
			return err
		}
		out = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BuildInto runs the evaluation target and decodes its output into v, for
// callers whose tool emits a different document shape.
func (b *Builder) BuildInto(ctx context.Context, v any) error {
	return b.evaluate(ctx, func(data []byte) error {
		return projectmodel.DecodeInto(data, v)
	})
}

func (b *Builder) evaluate(ctx context.Context, decode func([]byte) error) error {
	dir, err := os.MkdirTemp(b.tempRoot, meta.TempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			b.logger.Warn("remove temp dir failed", logfields.Path(dir), logfields.Error(err))
		}
	}()

	outputFile := filepath.Join(dir, meta.OutputFileName)
	cmd := b.Command(outputFile)
	b.logger.Debug("evaluating project",
		logfields.Project(b.projectPath),
		logfields.Configuration(b.configuration),
		logfields.TargetDir(b.targetLocation),
		logfields.Command(cmd.String()),
	)

	start := time.Now()
	res, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRunnerFailed, err)
	}
	b.logger.Debug("build tool finished",
		logfields.ExitCode(res.ExitCode),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
	)
	if res.ExitCode != 0 {
		return &CreationFailedError{
			ProjectPath: b.projectPath,
			ExitCode:    res.ExitCode,
			Stdout:      res.Stdout,
			Stderr:      res.Stderr,
		}
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		return &ReadError{Path: outputFile, Err: err}
	}
	if err := decode(data); err != nil {
		return &ReadError{Path: outputFile, Err: err}
	}
	return nil
}
