package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelocantos/flow/internal/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, pipeline.DefaultMaxParts, cfg.Limits.MaxParts)
	assert.Empty(t, cfg.Audit.Path)
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromOverrides(t *testing.T) {
	path := writeConfig(t, `
limits:
  max_components: 50
  max_parts: 32
audit:
  path: /var/tmp/flow-audit.jsonl
`)
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Limits.MaxComponents)
	assert.Equal(t, 32, cfg.Limits.MaxParts)
	assert.Equal(t, "/var/tmp/flow-audit.jsonl", cfg.Audit.Path)

	opts := cfg.ParserOptions()
	assert.Equal(t, pipeline.Options{MaxComponents: 50, MaxParts: 32}, opts)
}

func TestLoadFromPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "limits:\n  max_components: 5\n")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Limits.MaxComponents)
	assert.Equal(t, pipeline.DefaultMaxParts, cfg.Limits.MaxParts)
}

func TestLoadFromExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, "audit:\n  path: ~/logs/audit.jsonl\n")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "audit.jsonl"), cfg.Audit.Path)
}

func TestLoadFromRejectsInvalidLimits(t *testing.T) {
	cases := map[string]string{
		"negative components": "limits:\n  max_components: -1\n",
		"zero parts":          "limits:\n  max_parts: 0\n",
		"too many parts":      "limits:\n  max_parts: 5000\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	_, err := LoadFrom(writeConfig(t, "limits: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
