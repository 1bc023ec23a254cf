package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/analyzer/gemini"
	"github.com/foodloop/foodlens/internal/analyzer/heuristic"
	"github.com/foodloop/foodlens/internal/chat"
	"github.com/foodloop/foodlens/internal/config"
	"github.com/foodloop/foodlens/internal/knowledge"
	"github.com/foodloop/foodlens/internal/logging"
	"github.com/foodloop/foodlens/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	classifier, chatSvc := newBackend(ctx, cfg, logger)
	if c, ok := classifier.(*gemini.Classifier); ok {
		defer func() {
			if err := c.Close(); err != nil {
				logger.Error("failed to close gemini client", "error", err)
			}
		}()
	}

	server := web.NewServer(classifier, chatSvc, logger)
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
	}
}

// newBackend selects the classifier implementation once, from configuration.
// A nil classifier means mock mode; a nil chat service means chat is
// unavailable.
func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (analyzer.FoodClassifier, web.ChatReplier) {
	switch cfg.AnalyzerBackend {
	case "heuristic":
		logger.Info("using local heuristic analyzer backend")
		return heuristic.NewClassifier(nil, logger), newChatService(ctx, cfg, logger)
	case "mock":
		logger.Warn("mock backend selected, all predictions are static")
		return nil, nil
	default:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, falling back to mock predictions")
			return nil, nil
		}
		classifier, err := gemini.NewClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModels, logger)
		if err != nil {
			logger.Error("gemini initialization failed, falling back to mock predictions", "error", err)
			return nil, nil
		}
		knowledgeText := knowledge.Load(cfg.KnowledgePath)
		chatSvc := chat.NewService(classifier.Client(), classifier.ModelName(), knowledgeText, logger)
		return classifier, chatSvc
	}
}

// newChatService builds a chat-only Gemini client for backends that do not
// classify remotely. Chat is available whenever a key is configured.
func newChatService(ctx context.Context, cfg *config.Config, logger *slog.Logger) web.ChatReplier {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		logger.Warn("chat initialization failed, chat will be unavailable", "error", err)
		return nil
	}
	modelName := cfg.GeminiModels[0]
	knowledgeText := knowledge.Load(cfg.KnowledgePath)
	return chat.NewService(client, modelName, knowledgeText, logger)
}
