// Where: internal/infra/config/env.go
// What: PROJECTCTX_* environment overrides.
// Why: Let CI and .env files adjust defaults without editing the config file.
package config

import (
	"os"
	"strings"

	"github.com/poruru/projectctx/internal/meta"
)

const (
	SuffixConfigPath     = "CONFIG_PATH"
	SuffixConfigHome     = "CONFIG_HOME"
	SuffixConfiguration  = "CONFIGURATION"
	SuffixTargetLocation = "TARGET_LOCATION"
	SuffixRunner         = "RUNNER"
	SuffixDockerImage    = "DOCKER_IMAGE"
	SuffixTool           = "TOOL"
	SuffixFormat         = "FORMAT"
	SuffixBucket         = "BUCKET"
	SuffixTable          = "TABLE"
	SuffixEndpoint       = "ENDPOINT"
)

// EnvKey returns the prefixed variable name for suffix.
func EnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// ApplyEnv overlays non-empty PROJECTCTX_* variables onto cfg. lookup is
// usually os.LookupEnv.
func ApplyEnv(cfg GlobalConfig, lookup func(string) (string, bool)) GlobalConfig {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, suffix string) {
		if value, ok := lookup(EnvKey(suffix)); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				*dst = trimmed
			}
		}
	}
	set(&cfg.Defaults.Configuration, SuffixConfiguration)
	set(&cfg.Defaults.TargetLocation, SuffixTargetLocation)
	set(&cfg.Defaults.Runner, SuffixRunner)
	set(&cfg.Defaults.DockerImage, SuffixDockerImage)
	set(&cfg.Defaults.Tool, SuffixTool)
	set(&cfg.Defaults.Format, SuffixFormat)
	set(&cfg.Publish.Bucket, SuffixBucket)
	set(&cfg.Publish.Table, SuffixTable)
	set(&cfg.Publish.Endpoint, SuffixEndpoint)
	return cfg
}
