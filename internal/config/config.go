package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DrafterConfig represents the top-level drafter.yml configuration.
type DrafterConfig struct {
	Version   string           `yaml:"version"`
	Instance  string           `yaml:"instance"`
	Role      string           `yaml:"role,omitempty"` // "editor" (default) or "viewer"
	Redis     *RedisConfig     `yaml:"redis,omitempty"`
	Phases    *PhasesConfig    `yaml:"phases,omitempty"`
	Generator *GeneratorConfig `yaml:"generator"`
}

// RedisConfig specifies the persistence backend connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// PhasesConfig toggles the optional parts of the phase sequence.
type PhasesConfig struct {
	KnowledgeBase bool `yaml:"knowledge_base,omitempty"`
}

// GeneratorConfig specifies the external generation command.
type GeneratorConfig struct {
	Command        []string `yaml:"command"`
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty"` // Default: 300
}

// Validate performs strict validation on the configuration and applies
// defaults.
func (c *DrafterConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	// Required: instance name
	if c.Instance == "" {
		return fmt.Errorf("instance name is required")
	}

	// Role defaults to editor
	if c.Role == "" {
		c.Role = "editor"
	}
	if c.Role != "editor" && c.Role != "viewer" {
		return fmt.Errorf("invalid role: %s (must be 'editor' or 'viewer')", c.Role)
	}

	// Redis defaults to localhost
	if c.Redis == nil {
		c.Redis = &RedisConfig{Addr: "localhost:6379"}
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr cannot be empty")
	}

	// Required: generator command
	if c.Generator == nil || len(c.Generator.Command) == 0 {
		return fmt.Errorf("generator.command is required")
	}
	if c.Generator.TimeoutSeconds == 0 {
		c.Generator.TimeoutSeconds = 300
	}
	if c.Generator.TimeoutSeconds < 0 {
		return fmt.Errorf("generator.timeout_seconds must be >= 0, got %d", c.Generator.TimeoutSeconds)
	}

	return nil
}

// IncludeKnowledgeBase reports whether the optional knowledge base phase is
// part of the sequence.
func (c *DrafterConfig) IncludeKnowledgeBase() bool {
	return c.Phases != nil && c.Phases.KnowledgeBase
}

// Load reads and validates drafter.yml from the specified path.
func Load(path string) (*DrafterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config DrafterConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
