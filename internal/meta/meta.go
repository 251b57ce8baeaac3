// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep tool identity, defaults, and layout names in one place.
package meta

const (
	// Project Identity
	AppName   = "projectctx"
	Slug      = "projectctx"
	EnvPrefix = "PROJECTCTX"

	// Directory Layout
	HomeDir        = ".projectctx"
	ConfigFileName = "config.yaml"
	TempPrefix     = "projectctx-"
	OutputFileName = "project-context.json"

	// Build Tool Contract
	DefaultConfiguration = "Debug"
	DefaultTool          = "dotnet"
	DefaultToolSubcmd    = "msbuild"
	EvaluateTarget       = "EvaluateProjectInfoForCodeGeneration"
	DefaultDockerImage   = "mcr.microsoft.com/dotnet/sdk:8.0"
	LabelPrefix          = "io.projectctx"
)
