// Where: internal/infra/msbuild/builder_test.go
// What: Tests for the project context builder.
// Why: Lock argument validation, command shape, error kinds, and temp cleanup.
package msbuild

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poruru/projectctx/internal/domain/projectmodel"
	"github.com/poruru/projectctx/internal/infra/process"
)

const samplePayload = `{
  "ProjectName": "App",
  "ProjectFullPath": "/p/app.csproj",
  "AssemblyName": "App",
  "Configuration": "Release",
  "TargetFramework": "net8.0",
  "IsClassLibrary": true,
  "CompilationItems": ["Program.cs"],
  "ProjectReferences": ["/p/lib/lib.csproj"],
  "PackageDependencies": [
    {"Name": "Serilog", "Version": "3.1.1", "Type": 1, "Resolved": true}
  ]
}`

func TestNewBuilderRejectsMissingArguments(t *testing.T) {
	cases := []struct {
		name    string
		project string
		target  string
		opts    []Option
	}{
		{"empty project", "", "/out", nil},
		{"blank project", "   ", "/out", nil},
		{"empty target", "/p/app.csproj", "", nil},
		{"both empty with configuration", "", "", []Option{WithConfiguration("Release")}},
		{"empty target with configuration", "/p/app.csproj", "", []Option{WithConfiguration("Release")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBuilder(tc.project, tc.target, tc.opts...)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewBuilderDefaultsConfiguration(t *testing.T) {
	b, err := NewBuilder("/p/app.csproj", "/out")
	require.NoError(t, err)
	assert.Equal(t, "Debug", b.Configuration())

	b, err = NewBuilder("/p/app.csproj", "/out", WithConfiguration("  "))
	require.NoError(t, err)
	assert.Equal(t, "Debug", b.Configuration())
}

func TestNewBuilderResolvesRelativePaths(t *testing.T) {
	b, err := NewBuilder("app.csproj", "targets")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(b.ProjectPath()))
	assert.True(t, filepath.IsAbs(b.TargetLocation()))
}

func TestCommandEmbedsProperties(t *testing.T) {
	b, err := NewBuilder("/p/app.csproj", "/out", WithConfiguration("Release"))
	require.NoError(t, err)

	cmd := b.Command("/tmp/projectctx-1/project-context.json")
	assert.Equal(t, "dotnet", cmd.Name)
	require.Len(t, cmd.Args, 4)
	assert.Equal(t, "msbuild", cmd.Args[0])
	assert.Equal(t, "/p/app.csproj", cmd.Args[1])
	assert.Equal(t, "/t:EvaluateProjectInfoForCodeGeneration", cmd.Args[2])
	assert.Equal(t,
		"/p:OutputFile=/tmp/projectctx-1/project-context.json;CodeGenerationTargetLocation=/out;Configuration=Release",
		cmd.Args[3],
	)
	line := cmd.String()
	assert.Contains(t, line, "Configuration=Release")
	assert.Contains(t, line, "CodeGenerationTargetLocation=/out")
	assert.Equal(t, "/p", cmd.Dir)
	assert.Equal(t, []string{"/tmp/projectctx-1", "/out"}, cmd.SharedDirs)
}

func TestCommandUsesCustomTool(t *testing.T) {
	b, err := NewBuilder("/p/app.csproj", "/out", WithTool(ParseTool("msbuild.exe -nologo")), WithEnv("A=1"))
	require.NoError(t, err)
	cmd := b.Command("/tmp/x.json")
	assert.Equal(t, "msbuild.exe", cmd.Name)
	assert.Equal(t, "-nologo", cmd.Args[0])
	assert.Equal(t, "/p/app.csproj", cmd.Args[1])
	assert.Equal(t, []string{"A=1"}, cmd.Env)
}

func TestParseToolDefaults(t *testing.T) {
	assert.Equal(t, DefaultTool(), ParseTool(""))
	assert.Equal(t, Tool{Name: "dotnet", Args: []string{"msbuild"}}, ParseTool("  dotnet   msbuild "))
}

func TestBuildReturnsDecodedContext(t *testing.T) {
	runner := &scriptedRunner{payload: samplePayload}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
	require.NoError(t, err)

	got, err := b.Build(context.Background())
	require.NoError(t, err)

	var want projectmodel.ProjectContext
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &want))
	assert.Equal(t, &want, got)
	assert.Equal(t, projectmodel.DependencyPackage, got.PackageDependencies[0].Type)
}

func TestBuildIntoCustomSchema(t *testing.T) {
	runner := &scriptedRunner{payload: `{"ProjectName":"App","Custom":{"Answer":42}}`}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
	require.NoError(t, err)

	var custom struct {
		ProjectName string
		Custom      struct{ Answer int }
	}
	require.NoError(t, b.BuildInto(context.Background(), &custom))
	assert.Equal(t, "App", custom.ProjectName)
	assert.Equal(t, 42, custom.Custom.Answer)
}

func TestBuildNonZeroExitKeepsAllOutput(t *testing.T) {
	runner := &scriptedRunner{
		exitCode: 1,
		stdout:   []string{"Build started.", "restore: ok", "error CS0246"},
		stderr:   []string{"MSB4057: target not found", "Build FAILED."},
	}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContextCreationFailed)

	var failed *CreationFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, 1, failed.ExitCode)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "Failed to get Project Context for /p/app.csproj."))
	last := 0
	for _, line := range append(append([]string{}, runner.stdout...), runner.stderr...) {
		idx := strings.Index(msg, line)
		require.GreaterOrEqual(t, idx, 0, "missing line %q", line)
		assert.Greater(t, idx, last-1, "line %q out of order", line)
		last = idx
	}
}

func TestBuildWithOverlongToolOutputIsCreationFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	// Extra tool args land in $1.. after "sh", leaving the script untouched.
	script := "head -c 2000000 /dev/zero | tr '\\0' x; echo; echo 'error MSB1009: Project file does not exist.' >&2; exit 1"
	project := filepath.Join(t.TempDir(), "app.csproj")
	b, err := NewBuilder(project, t.TempDir(),
		WithRunner(process.ExecRunner{}),
		WithTool(Tool{Name: "sh", Args: []string{"-c", script, "sh"}}),
		WithTempRoot(t.TempDir()),
	)
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRunnerFailed)

	var failed *CreationFailedError
	require.True(t, errors.As(err, &failed), "got %v", err)
	assert.Equal(t, 1, failed.ExitCode)
	require.Len(t, failed.Stdout, 1)
	assert.Len(t, failed.Stdout[0], 2000000)
	assert.Equal(t, []string{"error MSB1009: Project file does not exist."}, failed.Stderr)
}

func TestBuildMissingOutputFileIsReadError(t *testing.T) {
	runner := &scriptedRunner{skip: true}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContextReadFailed)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, runner.outputFiles[0], readErr.Path)
}

func TestBuildInvalidJSONIsReadError(t *testing.T) {
	for name, payload := range map[string]string{
		"truncated":    `{"ProjectName":`,
		"wrong shape":  `{"IsClassLibrary":"no"}`,
		"empty output": ``,
	} {
		t.Run(name, func(t *testing.T) {
			runner := &scriptedRunner{payload: payload}
			b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
			require.NoError(t, err)

			_, err = b.Build(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrContextReadFailed)
			var readErr *ReadError
			require.True(t, errors.As(err, &readErr))
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestBuildRunnerFailure(t *testing.T) {
	runner := &scriptedRunner{err: errors.New("exec: \"dotnet\": executable file not found")}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(t.TempDir()))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	assert.ErrorIs(t, err, ErrRunnerFailed)
	assert.NotErrorIs(t, err, ErrContextCreationFailed)
}

func TestSequentialBuildsUseDistinctTempPathsAndCleanUp(t *testing.T) {
	root := t.TempDir()
	runner := &scriptedRunner{payload: samplePayload}
	b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(root))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	_, err = b.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, runner.outputFiles, 2)
	assert.NotEqual(t, runner.outputFiles[0], runner.outputFiles[1])
	for _, path := range runner.outputFiles {
		_, statErr := os.Stat(filepath.Dir(path))
		assert.True(t, os.IsNotExist(statErr), "temp dir %s was not removed", filepath.Dir(path))
	}
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFailedBuildsAlsoCleanUp(t *testing.T) {
	root := t.TempDir()
	for _, runner := range []*scriptedRunner{
		{exitCode: 2, stdout: []string{"x"}},
		{payload: "not json"},
		{err: errors.New("boom")},
	} {
		b, err := NewBuilder("/p/app.csproj", "/out", WithRunner(runner), WithTempRoot(root))
		require.NoError(t, err)
		_, err = b.Build(context.Background())
		require.Error(t, err)
	}
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
