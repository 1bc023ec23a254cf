package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.AnalyzerBackend)
	assert.NotEmpty(t, cfg.GeminiModels)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	t.Setenv("ANALYZER_BACKEND", "heuristic")
	t.Setenv("KNOWLEDGE_PATH", "/data/knowledge.pdf")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "test-key-123", cfg.GeminiAPIKey)
	assert.Equal(t, "heuristic", cfg.AnalyzerBackend)
	assert.Equal(t, "/data/knowledge.pdf", cfg.KnowledgePath)
}

func TestPortFallback(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestListenAddrWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LISTEN_ADDR", ":9999")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ListenAddr)
}

func TestSplitModels(t *testing.T) {
	assert.Equal(t, defaultModels, splitModels(""))
	assert.Equal(t, defaultModels, splitModels(" , ,"))
	assert.Equal(t,
		[]string{"gemini-2.5-pro", "gemini-pro"},
		splitModels("gemini-2.5-pro, gemini-pro"))
}

func TestModelsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_MODELS", "gemini-1.5-flash,gemini-pro")

	cfg := Load()

	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-pro"}, cfg.GeminiModels)
}
