package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodloop/foodlens/internal/analyzer/heuristic"
	"github.com/foodloop/foodlens/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewBackendMock(t *testing.T) {
	classifier, chatSvc := newBackend(context.Background(), &config.Config{AnalyzerBackend: "mock"}, testLogger())
	assert.Nil(t, classifier)
	assert.Nil(t, chatSvc)
}

func TestNewBackendGeminiWithoutKeyFallsBackToMock(t *testing.T) {
	classifier, chatSvc := newBackend(context.Background(), &config.Config{AnalyzerBackend: "gemini"}, testLogger())
	assert.Nil(t, classifier)
	assert.Nil(t, chatSvc)
}

func TestNewBackendHeuristicWithoutKey(t *testing.T) {
	cfg := &config.Config{AnalyzerBackend: "heuristic"}
	classifier, chatSvc := newBackend(context.Background(), cfg, testLogger())
	assert.IsType(t, &heuristic.Classifier{}, classifier)
	assert.Nil(t, chatSvc)
}

func TestNewBackendHeuristicWithKeyEnablesChat(t *testing.T) {
	cfg := &config.Config{
		AnalyzerBackend: "heuristic",
		GeminiAPIKey:    "test-key-123",
		GeminiModels:    []string{"gemini-pro"},
	}
	classifier, chatSvc := newBackend(context.Background(), cfg, testLogger())
	assert.IsType(t, &heuristic.Classifier{}, classifier)
	assert.NotNil(t, chatSvc, "chat should be available whenever a key is configured")
}
