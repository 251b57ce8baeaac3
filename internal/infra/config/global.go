// Where: internal/infra/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.projectctx/config.yaml consistently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poruru/projectctx/internal/infra/fileops"
	"github.com/poruru/projectctx/internal/meta"
)

// MaxRecentProjects caps the recent_projects list.
const MaxRecentProjects = 10

// GlobalConfig represents ~/.projectctx/config.yaml.
type GlobalConfig struct {
	Version        int             `yaml:"version"`
	Defaults       Defaults        `yaml:"defaults,omitempty"`
	Publish        PublishSettings `yaml:"publish,omitempty"`
	RecentProjects []string        `yaml:"recent_projects,omitempty"`
}

// Defaults stores evaluation inputs used when flags are omitted.
type Defaults struct {
	Configuration  string `yaml:"configuration,omitempty"`
	TargetLocation string `yaml:"target_location,omitempty"`
	Tool           string `yaml:"tool,omitempty"`
	Runner         string `yaml:"runner,omitempty"`
	DockerImage    string `yaml:"docker_image,omitempty"`
	Format         string `yaml:"format,omitempty"`
}

// PublishSettings stores the S3/DynamoDB destination.
type PublishSettings struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Table    string `yaml:"table,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Version: 1,
		Defaults: Defaults{
			Configuration: meta.DefaultConfiguration,
			Runner:        "local",
			Format:        "json",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
// PROJECTCTX_CONFIG_PATH wins over PROJECTCTX_CONFIG_HOME, which wins over
// the home directory.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvKey(SuffixConfigPath))); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := strings.TrimSpace(os.Getenv(EnvKey(SuffixConfigHome))); override != "" {
		return filepath.Join(override, meta.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist and
// returns its path.
func EnsureGlobalConfig() (string, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return path, SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return "", err
	}
	return path, nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault returns the config at path, or the defaults when the file
// does not exist yet.
func LoadOrDefault(path string) (GlobalConfig, error) {
	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGlobalConfig(), nil
		}
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	return fileops.WriteFileAtomic(path, payload, 0o644)
}

// RecordProject moves projectPath to the front of RecentProjects, removing
// duplicates and trimming the list to MaxRecentProjects.
func (c *GlobalConfig) RecordProject(projectPath string) {
	projectPath = strings.TrimSpace(projectPath)
	if projectPath == "" {
		return
	}
	recent := make([]string, 0, len(c.RecentProjects)+1)
	recent = append(recent, projectPath)
	for _, existing := range c.RecentProjects {
		if existing == projectPath {
			continue
		}
		recent = append(recent, existing)
		if len(recent) == MaxRecentProjects {
			break
		}
	}
	c.RecentProjects = recent
}
