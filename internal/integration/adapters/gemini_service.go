// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/stockbook/backend/internal/application/adapter"
)

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// geminiSuggestion mirrors the JSON shape requested from the model.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Suggest proposes expense categories for a free-text description.
func (s *GeminiService) Suggest(ctx context.Context, description string, candidates []string) ([]adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(description, candidates)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return s.parseResponse(resp, candidates)
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(description string, candidates []string) string {
	var sb strings.Builder

	sb.WriteString("You categorize small-business expenses. ")
	sb.WriteString("Given an expense description, suggest up to 3 categories, best match first.\n\n")

	sb.WriteString("RULES:\n")
	sb.WriteString("- Strongly prefer a category from the list below when one fits\n")
	sb.WriteString("- Only invent a new category when nothing listed comes close\n")
	sb.WriteString("- Confidence is a number between 0 and 1\n")
	sb.WriteString("- Respond with a JSON array only, no prose\n\n")

	sb.WriteString("EXISTING CATEGORIES:\n")
	for _, c := range candidates {
		sb.WriteString("- ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}

	sb.WriteString("\nRESPONSE FORMAT:\n")
	sb.WriteString(`[{"category": "Supplies", "confidence": 0.85}]`)
	sb.WriteString("\n\nEXPENSE DESCRIPTION:\n")
	sb.WriteString(description)

	return sb.String()
}

// parseResponse extracts suggestions from the model response.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse, candidates []string) ([]adapter.CategorySuggestion, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw.WriteString(string(text))
		}
	}

	var parsed []geminiSuggestion
	if err := json.Unmarshal([]byte(raw.String()), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	suggestions := make([]adapter.CategorySuggestion, 0, len(parsed))
	for _, p := range parsed {
		if p.Category == "" {
			continue
		}
		if p.Confidence < 0 {
			p.Confidence = 0
		}
		if p.Confidence > 1 {
			p.Confidence = 1
		}
		suggestions = append(suggestions, adapter.CategorySuggestion{
			Category:   canonicalCategory(p.Category, candidates),
			Confidence: p.Confidence,
		})
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no usable suggestions in gemini response")
	}
	return suggestions, nil
}

// canonicalCategory maps a case-insensitive match back to the exact candidate
// string, since breakdowns group by exact category names.
func canonicalCategory(category string, candidates []string) string {
	for _, c := range candidates {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}
