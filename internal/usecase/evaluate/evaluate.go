// Where: internal/usecase/evaluate/evaluate.go
// What: Evaluate workflow orchestration.
// Why: Run discover, build, render, write, and publish without CLI concerns.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
	"github.com/poruru/projectctx/internal/domain/report"
	"github.com/poruru/projectctx/internal/infra/discovery"
	"github.com/poruru/projectctx/internal/infra/fileops"
	"github.com/poruru/projectctx/internal/infra/msbuild"
	"github.com/poruru/projectctx/internal/infra/process"
	"github.com/poruru/projectctx/internal/infra/publish"
	"github.com/poruru/projectctx/internal/infra/ui"
	"github.com/poruru/projectctx/internal/logfields"
	"github.com/poruru/projectctx/internal/meta"
)

var (
	errRunnerNotConfigured    = errors.New("process runner is not configured")
	errPublisherNotConfigured = errors.New("publisher is not configured")
)

// Request captures the inputs of one evaluation.
type Request struct {
	Project        string
	TargetLocation string
	Configuration  string
	Tool           msbuild.Tool
	Env            []string
	Format         report.Format
	OutputPath     string
	DryRun         bool
	Publish        bool
	PublishTo      publish.Settings
}

// Result describes what an evaluation produced.
type Result struct {
	ProjectPath string
	Command     process.Command
	Context     *projectmodel.ProjectContext
	Rendered    []byte
	OutputPath  string
	Receipt     *publish.Receipt
}

// ProjectResolver maps the user's PROJECT argument to a project file.
type ProjectResolver func(target string) (string, error)

// Publisher stores evaluated contexts remotely.
type Publisher interface {
	Publish(ctx context.Context, settings publish.Settings, record publish.Record) (publish.Receipt, error)
}

// Recorder remembers evaluated projects, usually in the global config.
type Recorder func(projectPath string) error

// Workflow evaluates a project through the build tool.
type Workflow struct {
	Runner    process.Runner
	Resolve   ProjectResolver
	Publisher Publisher
	Record    Recorder
	Out       io.Writer
	UI        ui.UserInterface
	Logger    *slog.Logger
	TempRoot  string
}

// NewWorkflow wires a workflow with file-system discovery.
func NewWorkflow(runner process.Runner, out io.Writer, userInterface ui.UserInterface) *Workflow {
	return &Workflow{
		Runner:  runner,
		Resolve: discovery.FindProjectFile,
		Out:     out,
		UI:      userInterface,
	}
}

// Run performs the evaluation described by req.
func (w *Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.Runner == nil {
		return Result{}, errRunnerNotConfigured
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolve := w.Resolve
	if resolve == nil {
		resolve = discovery.FindProjectFile
	}

	projectPath, err := resolve(req.Project)
	if err != nil {
		return Result{}, err
	}
	result := Result{ProjectPath: projectPath}

	opts := []msbuild.Option{
		msbuild.WithConfiguration(req.Configuration),
		msbuild.WithRunner(w.Runner),
		msbuild.WithEnv(req.Env...),
		msbuild.WithLogger(logger),
		msbuild.WithTempRoot(w.TempRoot),
	}
	if strings.TrimSpace(req.Tool.Name) != "" {
		opts = append(opts, msbuild.WithTool(req.Tool))
	}
	builder, err := msbuild.NewBuilder(projectPath, req.TargetLocation, opts...)
	if err != nil {
		return result, err
	}
	result.ProjectPath = builder.ProjectPath()
	result.Command = builder.Command(filepath.Join(os.TempDir(), meta.TempPrefix+"*", meta.OutputFileName))

	if req.DryRun {
		w.info("dry run: " + result.Command.String())
		return result, nil
	}

	logger.Info("evaluating project",
		logfields.Project(builder.ProjectPath()),
		logfields.Configuration(builder.Configuration()),
	)
	projectContext, err := builder.Build(ctx)
	if err != nil {
		return result, err
	}
	result.Context = projectContext

	rendered, err := report.Render(projectContext, req.Format)
	if err != nil {
		return result, err
	}
	result.Rendered = rendered

	if err := w.write(req.OutputPath, rendered); err != nil {
		return result, err
	}
	result.OutputPath = req.OutputPath

	if req.Publish {
		receipt, err := w.publish(ctx, req, builder, projectContext)
		if err != nil {
			return result, err
		}
		result.Receipt = &receipt
	}

	if w.Record != nil {
		if err := w.Record(builder.ProjectPath()); err != nil {
			logger.Warn("record recent project failed", logfields.Error(err))
		}
	}
	return result, nil
}

func (w *Workflow) write(outputPath string, rendered []byte) error {
	if strings.TrimSpace(outputPath) == "" {
		out := w.Out
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(rendered)
		return err
	}
	if err := fileops.WriteFileAtomic(outputPath, rendered, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	w.success("wrote " + outputPath)
	return nil
}

func (w *Workflow) publish(
	ctx context.Context,
	req Request,
	builder *msbuild.Builder,
	projectContext *projectmodel.ProjectContext,
) (publish.Receipt, error) {
	if w.Publisher == nil {
		return publish.Receipt{}, errPublisherNotConfigured
	}
	// The stored object is always JSON, whatever format was printed.
	body, err := report.Render(projectContext, report.FormatJSON)
	if err != nil {
		return publish.Receipt{}, err
	}
	receipt, err := w.Publisher.Publish(ctx, req.PublishTo, publish.Record{
		ProjectPath:   builder.ProjectPath(),
		Configuration: builder.Configuration(),
		Context:       projectContext,
		Body:          body,
	})
	if err != nil {
		return receipt, err
	}
	w.success(fmt.Sprintf("published s3://%s/%s", receipt.Bucket, receipt.Key))
	return receipt, nil
}

func (w *Workflow) info(msg string) {
	if w.UI != nil {
		w.UI.Info(msg)
	}
}

func (w *Workflow) success(msg string) {
	if w.UI != nil {
		w.UI.Success(msg)
	}
}
