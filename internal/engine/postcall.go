package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// PostCall produces the one-shot post-call report: summary, follow-up email,
// action items, and a structured CRM activity log.
type PostCall struct {
	llm Completer
	log *zap.SugaredLogger
}

// NewPostCall constructs the post-call engine.
func NewPostCall(c Completer) *PostCall {
	return &PostCall{llm: c, log: logging.Sugar().Named("postcall")}
}

// GenerateSummary builds the full report from the transcript.
func (e *PostCall) GenerateSummary(ctx context.Context, transcript string) (*Report, error) {
	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      postCallSystemPrompt,
		User:        fmt.Sprintf("Transcript:\n---\n%s\n---\nGenerate the post-call JSON report. Be concise.", transcript),
		MaxTokens:   2500,
		Temperature: 0.3,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("report hit token limit, content may be truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("postcall: %w", err)
	}
	if trimmed := strings.TrimSpace(raw); trimmed == "" || trimmed == "{}" {
		return nil, fmt.Errorf("postcall: empty report content")
	}

	var r Report
	if err := decodeJSON(raw, &r); err != nil {
		return nil, fmt.Errorf("postcall: %w", err)
	}
	if r.ActionItems == nil {
		r.ActionItems = []string{}
	}
	if r.ClientInsights == nil {
		r.ClientInsights = []string{}
	}
	if r.NextMeetingTopics == nil {
		r.NextMeetingTopics = []string{}
	}
	if r.ComplianceNotes == nil {
		r.ComplianceNotes = []string{}
	}
	return &r, nil
}
