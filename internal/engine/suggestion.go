package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Suggestion generates ultra-short tactical suggestions for the advisor. It
// remembers everything it has issued and injects that list into each prompt
// so the model does not repeat itself.
type Suggestion struct {
	llm Completer
	log *zap.SugaredLogger

	mu    sync.Mutex
	prior []string
}

// NewSuggestion constructs the suggestion engine.
func NewSuggestion(c Completer) *Suggestion {
	return &Suggestion{llm: c, log: logging.Sugar().Named("suggestion")}
}

// Generate returns one suggestion line, or "" when the model judged the
// recent exchange contentless. The coaching flag selects the prompt variant
// that adds a rationale line.
func (e *Suggestion) Generate(ctx context.Context, transcript string, coaching bool) (string, error) {
	e.mu.Lock()
	prior := priorList("Prior suggestions already given (do NOT repeat these):", e.prior)
	e.mu.Unlock()

	system := suggestionSystemPrompt
	instruction := "Generate ONE specific suggestion (max 10 words). Name a product or strategy."
	maxTokens := 40
	if coaching {
		system = coachingSuggestionPrompt
		instruction = "Generate ONE specific suggestion with coaching explanation."
		maxTokens = 120
	}

	user := fmt.Sprintf("Live conversation transcript:\n---\n%s\n---\n%s\n%s", transcript, prior, instruction)

	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if errors.Is(err, llm.ErrTruncated) {
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("suggestion: %w", err)
	}

	stripped := strings.TrimSpace(raw)
	if stripped == "" || strings.Contains(strings.ReplaceAll(strings.ToUpper(stripped), " ", "_"), "NO_SUGGESTION") {
		e.log.Debug("no actionable suggestion")
		return "", nil
	}

	e.mu.Lock()
	e.prior = append(e.prior, stripped)
	e.mu.Unlock()
	return stripped, nil
}
