// Where: internal/command/test_helpers_test.go
// What: Shared fakes for command tests.
// Why: Run the CLI end to end without a .NET SDK or Docker.
package command

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru/projectctx/internal/infra/interaction"
	"github.com/poruru/projectctx/internal/infra/process"
	"github.com/poruru/projectctx/internal/infra/publish"
)

const testPayload = `{"ProjectName":"App","AssemblyName":"App","Configuration":"Release","TargetFramework":"net8.0",
"PackageDependencies":[{"Name":"Serilog","Version":"3.1.1","Type":"Package"}]}`

type fakeToolRunner struct {
	exitCode int
	stdout   []string
	stderr   []string
	err      error
	calls    []process.Command
}

func (r *fakeToolRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	r.calls = append(r.calls, cmd)
	if r.err != nil {
		return process.Result{}, r.err
	}
	if r.exitCode == 0 {
		for _, arg := range cmd.Args {
			props, ok := strings.CutPrefix(arg, "/p:")
			if !ok {
				continue
			}
			for _, prop := range strings.Split(props, ";") {
				if path, ok := strings.CutPrefix(prop, "OutputFile="); ok {
					if err := os.WriteFile(path, []byte(testPayload), 0o600); err != nil {
						return process.Result{}, err
					}
				}
			}
		}
	}
	return process.Result{ExitCode: r.exitCode, Stdout: r.stdout, Stderr: r.stderr}, nil
}

type fakePublisher struct {
	settings []publish.Settings
	records  []publish.Record
}

func (p *fakePublisher) Publish(_ context.Context, settings publish.Settings, record publish.Record) (publish.Receipt, error) {
	p.settings = append(p.settings, settings)
	p.records = append(p.records, record)
	return publish.Receipt{Bucket: settings.Bucket, Key: "App/Release/id.json"}, nil
}

type fakePrompter struct {
	input  string
	choice string
	asked  int
}

func (p *fakePrompter) Input(string, []string) (string, error) {
	p.asked++
	return p.input, nil
}

func (p *fakePrompter) SelectValue(_ string, options []interaction.SelectOption) (string, error) {
	p.asked++
	if p.choice != "" {
		return p.choice, nil
	}
	return options[0].Value, nil
}

type testEnv struct {
	deps    Dependencies
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	runner  *fakeToolRunner
	cfgPath string
	runOpts []RunnerOptions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	origLogger := setDefaultLogger
	setDefaultLogger = func(*slog.Logger) {}
	t.Cleanup(func() { setDefaultLogger = origLogger })

	env := &testEnv{
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		runner:  &fakeToolRunner{},
		cfgPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
	env.deps = Dependencies{
		Out:           env.out,
		ErrOut:        env.errOut,
		IsInteractive: func() bool { return false },
		ConfigPath:    func() (string, error) { return env.cfgPath, nil },
		LookupEnv:     func(string) (string, bool) { return "", false },
		TempRoot:      t.TempDir(),
		NewRunner: func(opts RunnerOptions) (process.Runner, io.Closer, error) {
			env.runOpts = append(env.runOpts, opts)
			return env.runner, nil, nil
		},
	}
	return env
}

func writeProject(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<Project />"), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
