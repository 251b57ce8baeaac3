// Where: internal/infra/process/exec_runner.go
// What: os/exec implementation of Runner.
// Why: Run the build tool on the host and capture both streams line by line.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/poruru/projectctx/internal/logfields"
)

// DefaultDrainDelay bounds how long output is still read after the process
// exits, for descendants that keep the pipes open.
const DefaultDrainDelay = 2 * time.Second

// ExecRunner runs commands on the host. Out and ErrOut, when set, receive a
// live copy of each captured line.
type ExecRunner struct {
	Out    io.Writer
	ErrOut io.Writer
	// DrainDelay overrides DefaultDrainDelay.
	DrainDelay time.Duration
	Logger     *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return Result{}, errCommandNameRequired
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	killProcessGroupOnCancel(c)

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	defer stdoutR.Close()
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		_ = stdoutW.Close()
		return Result{}, fmt.Errorf("stderr pipe: %w", err)
	}
	defer stderrR.Close()
	c.Stdout = stdoutW
	c.Stderr = stderrW

	startErr := c.Start()
	// The child holds its own copies; ours must go so EOF can arrive.
	_ = stdoutW.Close()
	_ = stderrW.Close()
	if startErr != nil {
		return Result{}, fmt.Errorf("start %s: %w", cmd.Name, startErr)
	}

	stdout := lineSink{tee: r.Out}
	stderr := lineSink{tee: r.ErrOut}
	var group errgroup.Group
	group.Go(func() error { return collectLines(stdoutR, &stdout) })
	group.Go(func() error { return collectLines(stderrR, &stderr) })

	waitErr := c.Wait()
	// The exit status is final; descendants holding the pipes only get a
	// bounded grace period.
	deadline := time.Now().Add(r.drainDelay())
	for _, f := range []*os.File{stdoutR, stderrR} {
		if err := f.SetReadDeadline(deadline); err != nil && !errors.Is(err, os.ErrNoDeadline) {
			logger.Debug("set pipe deadline failed", logfields.Error(err))
		}
	}
	readErr := group.Wait()

	result := Result{Stdout: stdout.lines, Stderr: stderr.lines}
	for _, sink := range []*lineSink{&stdout, &stderr} {
		if sink.teeErr != nil {
			logger.Warn("echo build output failed", logfields.Error(sink.teeErr))
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("run %s: %w", cmd.Name, ctxErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, fmt.Errorf("run %s: %w", cmd.Name, waitErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	if readErr != nil {
		return result, fmt.Errorf("run %s: %w", cmd.Name, readErr)
	}
	return result, nil
}

func (r ExecRunner) drainDelay() time.Duration {
	if r.DrainDelay > 0 {
		return r.DrainDelay
	}
	return DefaultDrainDelay
}
