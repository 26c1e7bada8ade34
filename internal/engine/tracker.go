package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Tracker follows a pre-planned discussion-point checklist through the call.
// Unlike the accumulating engines, its state is fully replaced by each
// successful evaluation rather than appended to.
type Tracker struct {
	llm Completer
	log *zap.SugaredLogger

	mu     sync.Mutex
	points []Point
}

// NewTracker constructs the discussion-tracker engine.
func NewTracker(c Completer) *Tracker {
	return &Tracker{llm: c, log: logging.Sugar().Named("tracker")}
}

// SetPoints replaces the checklist with fresh pending points.
func (e *Tracker) SetPoints(texts []string) {
	pts := make([]Point, 0, len(texts))
	for _, t := range texts {
		pts = append(pts, Point{Text: t, Status: StatusPending})
	}
	e.mu.Lock()
	e.points = pts
	e.mu.Unlock()
}

// Points returns a copy of the current checklist.
func (e *Tracker) Points() []Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Point, len(e.points))
	copy(out, e.points)
	return out
}

// HasPoints reports whether a checklist has been supplied.
func (e *Tracker) HasPoints() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.points) > 0
}

// Evaluate asks the model for per-point status against the transcript and
// overwrites the stored checklist with the result.
func (e *Tracker) Evaluate(ctx context.Context, transcript string) (*TrackerUpdate, error) {
	e.mu.Lock()
	texts := make([]string, 0, len(e.points))
	for _, p := range e.points {
		texts = append(texts, p.Text)
	}
	e.mu.Unlock()
	if len(texts) == 0 {
		return nil, nil
	}

	pointsJSON, _ := json.Marshal(texts)

	raw, err := e.llm.Complete(ctx, llm.Request{
		System: trackerSystemPrompt,
		User: fmt.Sprintf("Pre-planned discussion points:\n%s\n\nLive transcript:\n---\n%s\n---\n\nEvaluate discussion progress and return JSON.",
			string(pointsJSON), transcript),
		MaxTokens:   400,
		Temperature: 0.2,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrTruncated) {
		e.log.Warn("completion truncated")
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	var result TrackerUpdate
	if err := decodeJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	if len(result.Points) > 0 {
		for i := range result.Points {
			if result.Points[i].Status == "" {
				result.Points[i].Status = StatusPending
			}
		}
		e.mu.Lock()
		e.points = result.Points
		e.mu.Unlock()

		discussed := 0
		for _, p := range result.Points {
			if p.Status == StatusDiscussed {
				discussed++
			}
		}
		e.log.Infow("discussion progress", "discussed", discussed, "total", len(result.Points))
	}
	return &TrackerUpdate{Points: e.Points(), Nudge: result.Nudge}, nil
}
