// Package config centralizes the environment-driven knobs every cmd/
// binary reads, in the style of the teacher's internal/common/utility.go,
// plus a YAML file format for runner-wide settings.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GetEnv reads key from the environment, falling back to defaultValue
// when unset or empty.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt reads an integer-valued environment variable, falling back to
// defaultValue when unset or unparsable.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetEnvBool reads a boolean-valued environment variable, falling back to
// defaultValue when unset or unparsable.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// RunnerConfig is the YAML-loadable settings a cmd/ binary needs to build
// and run a model: the default per-link channel capacity, the
// graceful-shutdown timeout, and the introspection server's bind address.
type RunnerConfig struct {
	DefaultCapacity   int    `yaml:"default_capacity"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
	ListenAddr        string `yaml:"listen_addr"`
	Verbose           bool   `yaml:"verbose"`
	MongoURI          string `yaml:"mongo_uri"`
	MongoDatabase     string `yaml:"mongo_database"`
}

// DefaultRunnerConfig mirrors the built-in runtime defaults (§5's
// one-payload-per-link default capacity) so a missing config file still
// produces a runnable configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		DefaultCapacity:   1,
		ShutdownTimeoutMs: 5000,
		ListenAddr:        ":8080",
		MongoDatabase:     "dataflow",
	}
}

// LoadRunnerConfig reads a YAML runner config from path, overlaying
// DefaultRunnerConfig for any field the file omits.
func LoadRunnerConfig(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read runner config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse runner config %q: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto a base RunnerConfig,
// matching the teacher's convention of environment taking precedence over
// any file-based configuration for container deployments.
func FromEnv(base RunnerConfig) RunnerConfig {
	base.DefaultCapacity = GetEnvInt("DATAFLOW_DEFAULT_CAPACITY", base.DefaultCapacity)
	base.ShutdownTimeoutMs = GetEnvInt("DATAFLOW_SHUTDOWN_TIMEOUT_MS", base.ShutdownTimeoutMs)
	base.ListenAddr = GetEnv("DATAFLOW_LISTEN_ADDR", base.ListenAddr)
	base.Verbose = GetEnvBool("DATAFLOW_VERBOSE", base.Verbose)
	base.MongoURI = GetEnv("DATAFLOW_MONGO_URI", base.MongoURI)
	base.MongoDatabase = GetEnv("DATAFLOW_MONGO_DATABASE", base.MongoDatabase)
	return base
}
