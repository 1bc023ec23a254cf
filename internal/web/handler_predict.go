package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/domain"
)

type predictRequest struct {
	ImageURL string `json:"imageUrl"`
}

// errorResponse is the structured 4xx/5xx body shared by predict and chat.
type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "imageUrl is required",
			Message: "Request body must be JSON with a non-empty imageUrl field.",
		})
		return
	}

	if s.classifier == nil {
		s.logger.Warn("analyzer not configured, returning mock predictions")
		s.writeJSON(w, http.StatusOK, domain.MockAnalysis())
		return
	}

	start := time.Now()
	result, err := s.classifier.Classify(r.Context(), req.ImageURL)
	if err != nil {
		s.respondPredictError(w, err)
		return
	}

	s.logger.Info("analysis completed",
		"item", result.ItemName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.writeJSON(w, http.StatusOK, result)
}

// respondPredictError is the single place that maps classifier errors to
// status codes. Validation problems are the caller's fault and get a 400;
// quota exhaustion gets a 503; everything else degrades to the mock result so
// the response shape stays intact.
func (s *Server) respondPredictError(w http.ResponseWriter, err error) {
	var ve *analyzer.ValidationError
	if errors.As(err, &ve) {
		s.logger.Warn("image rejected", "kind", int(ve.Kind), "reason", ve.Message)
		s.writeJSON(w, http.StatusBadRequest, validationResponse(ve))
		return
	}

	var qe *analyzer.QuotaError
	if errors.As(err, &qe) {
		s.logger.Error("quota exceeded", "error", qe.Message)
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:      "API quota exceeded",
			Message:    "Gemini API rate limit exceeded. You have reached your daily quota. Please try again later or upgrade your API plan.",
			Suggestion: "Please wait a few hours or upgrade your Gemini API plan. For more information, visit: https://ai.google.dev/gemini-api/docs/rate-limits",
		})
		return
	}

	s.logger.Warn("analysis failed, returning mock predictions", "error", err)
	s.writeJSON(w, http.StatusOK, domain.MockAnalysis())
}

func validationResponse(ve *analyzer.ValidationError) errorResponse {
	resp := errorResponse{Error: "Invalid image content"}
	switch ve.Kind {
	case analyzer.ValidationAIGenerated:
		resp.Message = "AI-generated images are not allowed. Please upload a real photo of food."
		resp.Suggestion = "Please upload a real photograph of food. AI-generated, synthetic, or computer-generated images are not accepted."
	case analyzer.ValidationNonFood:
		resp.Message = "This image does not contain food items. Please upload an image of food only."
		resp.Suggestion = "Accepted items: cooked meals, raw ingredients, beverages, snacks, desserts. Not allowed: cleaning products, medicines, electronics, or other non-food items."
	default:
		resp.Message = ve.Message
		resp.Suggestion = "Please upload an image containing only food items."
	}
	return resp
}
