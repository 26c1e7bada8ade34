package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Compliance scans the primary party's statements against the fixed rule
// taxonomy in its prompt. Previously flagged issue descriptions are fed back
// so issues are not re-flagged across runs.
type Compliance struct {
	llm Completer
	log *zap.SugaredLogger

	mu    sync.Mutex
	prior []string
}

// NewCompliance constructs the compliance engine.
func NewCompliance(c Completer) *Compliance {
	return &Compliance{llm: c, log: logging.Sugar().Named("compliance")}
}

// Scan returns zero or more newly flagged issues.
func (e *Compliance) Scan(ctx context.Context, transcript string) ([]Flag, error) {
	e.mu.Lock()
	prior := priorList("Already flagged issues (don't repeat):", e.prior)
	e.mu.Unlock()

	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      complianceSystemPrompt,
		User:        fmt.Sprintf("Conversation transcript:\n---\n%s\n---\n%s\nScan for NEW compliance issues. Return JSON.", transcript, prior),
		MaxTokens:   300,
		Temperature: 0.2,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("completion truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("compliance: %w", err)
	}

	var result struct {
		Flags []Flag `json:"flags"`
	}
	if err := decodeJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("compliance: %w", err)
	}

	for i := range result.Flags {
		if result.Flags[i].Severity != "critical" {
			result.Flags[i].Severity = "warning"
		}
	}

	e.mu.Lock()
	for _, f := range result.Flags {
		e.prior = append(e.prior, f.Issue)
	}
	e.mu.Unlock()

	if len(result.Flags) > 0 {
		e.log.Infow("compliance issues found", "count", len(result.Flags))
	}
	return result.Flags, nil
}
