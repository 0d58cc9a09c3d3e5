package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "venturescope", cfg.Export.Product)
	assert.Equal(t, "gemini-2.0-flash", cfg.Narrative.Model)
	assert.Empty(t, cfg.Narrative.APIKey)
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestLoadFromFileFillsGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "venturescope.yaml")
	yaml := `
narrative:
  api_key: file-narrative-key
research:
  api_key: file-research-key
  engine_id: file-engine
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-narrative-key", cfg.Narrative.APIKey)
	assert.Equal(t, "file-research-key", cfg.Research.APIKey)
	assert.Equal(t, "file-engine", cfg.Research.EngineID)
	// Values the file does not set keep their defaults.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "venturescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("narrative:\n  api_key: file-key\n"), 0o644))

	t.Setenv("VS_NARRATIVE_API_KEY", "env-key")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Narrative.APIKey)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := LoadFromFile("")
	require.NoError(t, err)

	cfg.Logging.Level = "shouting"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = "debug"
	cfg.Server.Port = -1
	assert.Error(t, cfg.Validate())
}
