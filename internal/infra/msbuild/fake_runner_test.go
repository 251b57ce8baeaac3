package msbuild

import (
	"context"
	"os"
	"strings"

	"github.com/poruru/projectctx/internal/infra/process"
)

// scriptedRunner plays the build tool: it records each command and, on
// success, writes payload to the OutputFile named in the property argument.
type scriptedRunner struct {
	exitCode int
	stdout   []string
	stderr   []string
	payload  string
	skip     bool
	err      error

	calls       []process.Command
	outputFiles []string
}

func (r *scriptedRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	r.calls = append(r.calls, cmd)
	if r.err != nil {
		return process.Result{}, r.err
	}
	outputFile := outputFileFromArgs(cmd.Args)
	r.outputFiles = append(r.outputFiles, outputFile)
	if r.exitCode == 0 && !r.skip && outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(r.payload), 0o600); err != nil {
			return process.Result{}, err
		}
	}
	return process.Result{ExitCode: r.exitCode, Stdout: r.stdout, Stderr: r.stderr}, nil
}

func outputFileFromArgs(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "/p:") {
			continue
		}
		for _, prop := range strings.Split(strings.TrimPrefix(arg, "/p:"), ";") {
			if value, ok := strings.CutPrefix(prop, "OutputFile="); ok {
				return value
			}
		}
	}
	return ""
}
