// Package config loads server configuration from an optional YAML file with
// environment-variable overrides. Secrets are never stored inline: token-like
// values support ${ENV_VAR} placeholders resolved at load time.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Port             string `yaml:"port"`
	KeepAliveSeconds int    `yaml:"keepAliveSeconds"`
	ObserverBuffer   int    `yaml:"observerBuffer"`
	GitHub           GitHub `yaml:"github"`
}

// GitHub configures the hosting API clients. The App fields enable
// server-level GitHub App installation auth; requests then may omit a
// per-request credential.
type GitHub struct {
	BaseURL        string `yaml:"baseUrl"`
	AppID          int64  `yaml:"appId"`
	InstallationID int64  `yaml:"installationId"`
	PrivateKeyPath string `yaml:"privateKeyPath"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads path (skipped when empty or missing), expands ${ENV} placeholders,
// applies env-var overrides, and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file — fall through to env and defaults.
		case err != nil:
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(expandEnv(data), cfg); err != nil {
				return nil, fmt.Errorf("parse config file %q: %w", path, err)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("GITHUB_BASE_URL"); v != "" {
		cfg.GitHub.BaseURL = v
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.KeepAliveSeconds <= 0 {
		cfg.KeepAliveSeconds = 30
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 64
	}

	return cfg, nil
}

// KeepAlive returns the SSE idle-signal interval.
func (c *Config) KeepAlive() time.Duration {
	return time.Duration(c.KeepAliveSeconds) * time.Second
}

func expandEnv(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}
