package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Intelligence extracts client relationship intelligence from the
// counterparty's lines: personal details, sentiment, risk profile, referrals.
// It keeps no memory; each run is a fresh extraction over the full transcript.
type Intelligence struct {
	llm Completer
	log *zap.SugaredLogger
}

// NewIntelligence constructs the intelligence engine.
func NewIntelligence(c Completer) *Intelligence {
	return &Intelligence{llm: c, log: logging.Sugar().Named("intelligence")}
}

// Analyze returns a structured profile. An empty profile is a valid "nothing
// to report" outcome, distinct from an error.
func (e *Intelligence) Analyze(ctx context.Context, transcript string) (*Profile, error) {
	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      intelligenceSystemPrompt,
		User:        fmt.Sprintf("Conversation transcript:\n---\n%s\n---\nExtract client intelligence as JSON.", transcript),
		MaxTokens:   800,
		Temperature: 0.3,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("completion truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("intelligence: %w", err)
	}

	var p Profile
	if err := decodeJSON(raw, &p); err != nil {
		return nil, fmt.Errorf("intelligence: %w", err)
	}
	p.applyDefaults()
	return &p, nil
}
