package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// WordCloud extracts weighted client focus topics. It carries no memory:
// topic weights are a snapshot recomputed from the full transcript each run,
// not a running accumulation.
type WordCloud struct {
	llm Completer
	log *zap.SugaredLogger
}

// NewWordCloud constructs the word-cloud engine.
func NewWordCloud(c Completer) *WordCloud {
	return &WordCloud{llm: c, log: logging.Sugar().Named("wordcloud")}
}

// Analyze returns the current topic snapshot.
func (e *WordCloud) Analyze(ctx context.Context, transcript string) ([]Topic, error) {
	raw, err := e.llm.Complete(ctx, llm.Request{
		System:      wordCloudSystemPrompt,
		User:        fmt.Sprintf("Conversation transcript:\n---\n%s\n---\nExtract the client's focus topics for the word cloud as JSON.", transcript),
		MaxTokens:   500,
		Temperature: 0.4,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("completion truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("wordcloud: %w", err)
	}

	var result struct {
		Topics []Topic `json:"topics"`
	}
	if err := decodeJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("wordcloud: %w", err)
	}
	return result.Topics, nil
}
