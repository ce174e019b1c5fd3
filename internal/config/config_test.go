package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "database:\n  url: postgres://localhost/faq\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3", cfg.Ollama.Model)
	assert.Equal(t, 60, cfg.Ollama.TimeoutSecs)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, 0.2, cfg.RAG.ConfidenceOverride)
	assert.Equal(t, "postgres://localhost/faq", cfg.Database.URL)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
ollama:
  model: mistral
rag:
  confidence_override: -1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mistral", cfg.Ollama.Model)
	assert.Equal(t, -1.0, cfg.RAG.ConfidenceOverride)
}

func TestLoadConfigEnvWins(t *testing.T) {
	path := writeConfig(t, "ollama:\n  model: from-file\n")

	t.Setenv("OLLAMA_MODEL", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env/faq")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Ollama.Model)
	assert.Equal(t, "postgres://env/faq", cfg.Database.URL)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
