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

// Todo extracts short imperative action items. Items string-equal to anything
// previously returned are filtered before they reach the caller.
type Todo struct {
	llm Completer
	log *zap.SugaredLogger

	mu    sync.Mutex
	prior []string
}

// NewTodo constructs the to-do engine.
func NewTodo(c Completer) *Todo {
	return &Todo{llm: c, log: logging.Sugar().Named("todo")}
}

// Extract returns only items not previously surfaced.
func (e *Todo) Extract(ctx context.Context, transcript string) ([]string, error) {
	e.mu.Lock()
	prior := priorList("Already extracted items (do NOT repeat):", e.prior)
	e.mu.Unlock()

	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      todoSystemPrompt,
		User:        fmt.Sprintf("Conversation transcript:\n---\n%s\n---\n%s\nExtract NEW action-item to-do pointers as JSON.", transcript, prior),
		MaxTokens:   300,
		Temperature: 0.3,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("completion truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("todo: %w", err)
	}

	var result struct {
		Items []string `json:"items"`
	}
	if err := decodeJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("todo: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	seen := make(map[string]struct{}, len(e.prior))
	for _, it := range e.prior {
		seen[it] = struct{}{}
	}
	var fresh []string
	for _, it := range result.Items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		fresh = append(fresh, it)
		e.prior = append(e.prior, it)
	}
	if len(fresh) > 0 {
		e.log.Infow("new action items", "count", len(fresh))
	}
	return fresh, nil
}
