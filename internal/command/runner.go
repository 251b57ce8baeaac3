// Where: internal/command/runner.go
// What: Process runner selection for the evaluate command.
// Why: Choose between the local SDK and the SDK container image.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poruru/projectctx/internal/infra/process"
	"github.com/poruru/projectctx/internal/meta"
)

const (
	runnerLocal  = "local"
	runnerDocker = "docker"
)

// RunnerOptions selects and configures a process runner.
type RunnerOptions struct {
	Kind    string
	Image   string
	Verbose bool
	ErrOut  io.Writer
	Logger  *slog.Logger
}

// RunnerFactory builds a runner and an optional closer for its resources.
type RunnerFactory func(RunnerOptions) (process.Runner, io.Closer, error)

var newDockerClient = func() (process.DockerClient, error) {
	client, err := process.NewDockerClient()
	if err != nil {
		return nil, err
	}
	return client, nil
}

func defaultRunnerFactory(opts RunnerOptions) (process.Runner, io.Closer, error) {
	// Tool output is only streamed in verbose mode; failures still carry it.
	var tee io.Writer
	if opts.Verbose {
		tee = opts.ErrOut
	}

	switch normalizeRunnerKind(opts.Kind) {
	case runnerLocal:
		return process.ExecRunner{Out: tee, ErrOut: tee, Logger: opts.Logger}, nil, nil
	case runnerDocker:
		client, err := newDockerClient()
		if err != nil {
			return nil, nil, fmt.Errorf("connect to docker: %w", err)
		}
		image := strings.TrimSpace(opts.Image)
		if image == "" {
			image = meta.DefaultDockerImage
		}
		runner := process.DockerRunner{
			Client: client,
			Image:  image,
			Out:    tee,
			ErrOut: tee,
			Logger: opts.Logger,
		}
		return runner, asCloser(client), nil
	default:
		return nil, nil, fmt.Errorf("unknown runner %q (want local or docker)", opts.Kind)
	}
}

func normalizeRunnerKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return runnerLocal
	}
	return kind
}

// asCloser returns the client as an io.Closer when it implements one.
func asCloser(client process.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
