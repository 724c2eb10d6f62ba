package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *DrafterConfig {
	return &DrafterConfig{
		Version:   "1.0",
		Instance:  "habitat",
		Generator: &GeneratorConfig{Command: []string{"/usr/local/bin/gen"}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes and gets defaults", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "editor", cfg.Role)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, 300, cfg.Generator.TimeoutSeconds)
	})

	t.Run("rejects unsupported version", func(t *testing.T) {
		cfg := validConfig()
		cfg.Version = "2.0"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version")
	})

	t.Run("requires instance name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Instance = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts viewer role", func(t *testing.T) {
		cfg := validConfig()
		cfg.Role = "viewer"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		cfg := validConfig()
		cfg.Role = "admin"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty redis addr", func(t *testing.T) {
		cfg := validConfig()
		cfg.Redis = &RedisConfig{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a generator command", func(t *testing.T) {
		cfg := validConfig()
		cfg.Generator = nil
		assert.Error(t, cfg.Validate())

		cfg = validConfig()
		cfg.Generator.Command = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Generator.TimeoutSeconds = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("explicit timeout survives", func(t *testing.T) {
		cfg := validConfig()
		cfg.Generator.TimeoutSeconds = 60
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 60, cfg.Generator.TimeoutSeconds)
	})
}

func TestIncludeKnowledgeBase(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IncludeKnowledgeBase())

	cfg.Phases = &PhasesConfig{KnowledgeBase: true}
	assert.True(t, cfg.IncludeKnowledgeBase())

	cfg.Phases = &PhasesConfig{KnowledgeBase: false}
	assert.False(t, cfg.IncludeKnowledgeBase())
}

func TestLoad(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "drafter.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("loads a complete file", func(t *testing.T) {
		path := writeConfig(t, `
version: "1.0"
instance: habitat
role: viewer
redis:
  addr: redis.internal:6379
  db: 2
phases:
  knowledge_base: true
generator:
  command: ["/usr/local/bin/gen", "--fast"]
  timeout_seconds: 120
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "habitat", cfg.Instance)
		assert.Equal(t, "viewer", cfg.Role)
		assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.True(t, cfg.IncludeKnowledgeBase())
		assert.Equal(t, []string{"/usr/local/bin/gen", "--fast"}, cfg.Generator.Command)
		assert.Equal(t, 120, cfg.Generator.TimeoutSeconds)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		path := writeConfig(t, "version: [broken")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("validation failures surface", func(t *testing.T) {
		path := writeConfig(t, `
version: "1.0"
instance: habitat
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generator.command")
	})
}
