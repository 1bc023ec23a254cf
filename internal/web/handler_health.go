package web

import (
	"net/http"

	"github.com/foodloop/foodlens/internal/analyzer"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "running",
		"service":         "FoodLens AI Service",
		"analyzer_loaded": s.classifier != nil,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"analyzer_loaded": s.classifier != nil,
		"ai_provider":     s.providerName(),
	})
}

func (s *Server) providerName() string {
	if s.classifier == nil {
		return "mock"
	}
	if p, ok := s.classifier.(analyzer.Provider); ok {
		return p.Provider()
	}
	return "unknown"
}
