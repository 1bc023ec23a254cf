package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/chat"
)

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   "Chat unavailable",
			Message: "AI chat is not configured. Please set GEMINI_API_KEY.",
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid request",
			Message: "Request body must be JSON.",
		})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "message is required",
			Message: "Message cannot be empty.",
		})
		return
	}

	reply, err := s.chat.Reply(r.Context(), message, req.History)
	if err != nil {
		var qe *analyzer.QuotaError
		if errors.As(err, &qe) {
			s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error:   "API quota exceeded",
				Message: "Gemini API rate limit exceeded. Please try again later.",
			})
			return
		}
		s.logger.Error("chat failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Chat failed",
			Message: err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
