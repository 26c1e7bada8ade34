package engine

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Planner suggests discussion points for an upcoming or in-progress call.
// It is a one-shot engine used both by the pre-call HTTP endpoint and the
// in-session suggestion command; it is not part of the recurring pipeline.
type Planner struct {
	llm Completer
	log *zap.SugaredLogger
}

// NewPlanner constructs the discussion-point planner.
func NewPlanner(c Completer) *Planner {
	return &Planner{llm: c, log: logging.Sugar().Named("planner")}
}

// Suggest returns 4-5 discussion points built from whatever context is
// available: a rendered CRM context block, a live transcript, both, or
// neither (generic quarterly-review points).
func (e *Planner) Suggest(ctx context.Context, clientContext, transcript string) ([]string, error) {
	var b strings.Builder
	if clientContext != "" {
		b.WriteString("Client context:\n")
		b.WriteString(clientContext)
		b.WriteString("\n\n")
	}
	if transcript = strings.TrimSpace(transcript); transcript != "" {
		b.WriteString("Conversation so far:\n---\n")
		b.WriteString(transcript)
		b.WriteString("\n---\n\n")
	}
	if b.Len() == 0 {
		b.WriteString("No client data or conversation available yet. Suggest generic discussion points for a financial advisory call.\n")
	}
	b.WriteString("Suggest 4-5 key discussion points for this call.")

	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      plannerSystemPrompt,
		User:        b.String(),
		MaxTokens:   300,
		Temperature: 0.4,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	var result struct {
		Points []string `json:"points"`
	}
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	e.log.Infow("discussion suggestions generated", "count", len(result.Points))
	return result.Points, nil
}
