// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// CategorySuggestion is one suggested expense category with the model's
// confidence in it.
type CategorySuggestion struct {
	Category   string
	Confidence float64
}

// CategorySuggester defines the interface for AI-backed expense category
// suggestions.
type CategorySuggester interface {
	// IsAvailable reports whether the suggester is configured.
	IsAvailable() bool

	// Suggest proposes categories for a free-text expense description, best
	// match first. The candidates slice lists categories already in use so
	// the model prefers existing vocabulary.
	Suggest(ctx context.Context, description string, candidates []string) ([]CategorySuggestion, error)
}
