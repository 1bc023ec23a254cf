// Package chat answers assistant questions over the same Gemini client the
// classifier uses, optionally grounded in a loaded knowledge document.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/foodloop/foodlens/internal/analyzer/gemini"
)

// systemInstruction scopes the assistant to the platform and refuses abuse
// questions.
const systemInstruction = `You are the FoodLoop assistant. Only answer questions about FoodLoop, food donation, the platform, and how to use it. Be brief and helpful.

Scope: If the user asks something off-topic (e.g. general knowledge, other products, unrelated advice), politely say you are here to help with FoodLoop and food donation only, and offer to answer questions about that.

Safety: Do not provide information that could be used to hack, exploit, or compromise the website or any system (e.g. security vulnerabilities, injection techniques, bypassing authentication, exploiting APIs, or similar). If such a question is asked, politely refuse and say you cannot assist with that.`

// maxHistory bounds the conversation context sent to the model.
const maxHistory = 10

// fallbackReply stands in when the model returns empty output.
const fallbackReply = "I couldn't generate a response. Please try again."

// Message is one prior conversation turn. Role is "user" or "model"; any
// other value is coerced to "user".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Service struct {
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewService builds the chat service on a shared Gemini client. When
// knowledgeText is non-empty it is prepended to the system instruction as the
// assistant's knowledge base.
func NewService(client *genai.Client, modelName, knowledgeText string, logger *slog.Logger) *Service {
	instruction := systemInstruction
	if knowledgeText != "" {
		instruction = "Use the following knowledge base when answering. Base your answers on it when relevant.\n\n" +
			knowledgeText + "\n\n---\n\n" + systemInstruction
		logger.Info("chat knowledge base loaded", "chars", len(knowledgeText))
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
	return &Service{model: model, logger: logger}
}

// Reply generates the assistant's answer to message given the prior turns.
// History beyond the last 10 entries is dropped before the call.
func (s *Service) Reply(ctx context.Context, message string, history []Message) (string, error) {
	session := s.model.StartChat()
	session.History = buildHistory(history)

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", gemini.ClassifyError(err))
	}

	reply := extractText(resp)
	if reply == "" {
		return fallbackReply, nil
	}
	return reply, nil
}

// buildHistory converts prior turns to provider content, keeping only the
// most recent maxHistory entries and coercing unknown roles to "user".
func buildHistory(history []Message) []*genai.Content {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role != "user" && role != "model" {
			role = "user"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	return out
}

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
