// Where: internal/infra/process/runner.go
// What: Process execution capability shared by build tool adapters.
// Why: Let callers inject a fake or a containerized runner instead of os/exec.
package process

import (
	"context"
	"strings"
)

// Command is a fully resolved invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env entries are KEY=VALUE and are appended to the inherited environment.
	Env []string
	// SharedDirs are host directories the command reads or writes. Runners
	// that isolate the process (docker) must make them visible at the same path.
	SharedDirs []string
}

// String renders the command line for logs and dry runs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Argv returns Name followed by Args.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Result is what a finished process left behind. Lines keep emission order
// within each stream.
type Result struct {
	ExitCode int
	Stdout   []string
	Stderr   []string
}

// Success reports a zero exit code.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a command to completion. A non-zero exit is reported in
// Result.ExitCode, not as an error; errors mean the process could not be run
// or its output could not be collected.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, cmd Command) (Result, error) {
	return f(ctx, cmd)
}
