// Where: internal/infra/msbuild/errors.go
// What: Error kinds returned by the project context builder.
// Why: Callers branch on construction, tool, and read failures with errors.Is/As.
package msbuild

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned by NewBuilder for missing required inputs.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrContextCreationFailed matches *CreationFailedError.
	ErrContextCreationFailed = errors.New("project context creation failed")
	// ErrContextReadFailed matches *ReadError.
	ErrContextReadFailed = errors.New("failed to read the build context information")
	// ErrRunnerFailed wraps failures to launch the build tool at all.
	ErrRunnerFailed = errors.New("build tool could not be run")
)

// CreationFailedError reports a non-zero exit from the build tool. It keeps
// every captured line so operators can diagnose the tool failure.
type CreationFailedError struct {
	ProjectPath string
	ExitCode    int
	Stdout      []string
	Stderr      []string
}

func (e *CreationFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to get Project Context for %s.", e.ProjectPath)
	b.WriteString("\n")
	b.WriteString(strings.Join(e.Stdout, "\n"))
	b.WriteString("\n")
	b.WriteString(strings.Join(e.Stderr, "\n"))
	return b.String()
}

func (e *CreationFailedError) Is(target error) bool {
	return target == ErrContextCreationFailed
}

// ReadError reports that the tool succeeded but its output file could not be
// read or decoded. Err is the underlying I/O or parse failure.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrContextReadFailed, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func (e *ReadError) Is(target error) bool {
	return target == ErrContextReadFailed
}
