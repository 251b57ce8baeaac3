package command

import (
	"strings"
	"testing"

	"github.com/poruru/projectctx/internal/infra/config"
)

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)
	if code := Run([]string{"config", "path"}, env.deps); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := strings.TrimSpace(env.out.String()); got != env.cfgPath {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestConfigShowAppliesEnv(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.DefaultGlobalConfig()
	cfg.Publish.Bucket = "from-file"
	if err := config.SaveGlobalConfig(env.cfgPath, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	env.deps.LookupEnv = func(key string) (string, bool) {
		if key == "PROJECTCTX_RUNNER" {
			return "docker", true
		}
		return "", false
	}

	if code := Run([]string{"config", "show"}, env.deps); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, env.errOut.String())
	}
	out := env.out.String()
	for _, want := range []string{"# " + env.cfgPath, "runner: docker", "bucket: from-file", "configuration: Debug"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowMissingFileUsesDefaults(t *testing.T) {
	env := newTestEnv(t)
	if code := Run([]string{"config", "show"}, env.deps); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(env.out.String(), "version: 1") {
		t.Fatalf("unexpected output %q", env.out.String())
	}
}
