package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/madhusmita6505/mads-poc/internal/llm"
)

func TestSuggestionNoSuggestionSentinel(t *testing.T) {
	for _, raw := range []string{"NO_SUGGESTION", "no_suggestion", "No suggestion", "  NO_SUGGESTION.  ", ""} {
		e := NewSuggestion(newFakeCompleter(raw))
		got, err := e.Generate(context.Background(), "Advisor: Hi", false)
		if err != nil {
			t.Fatalf("raw %q: unexpected error %v", raw, err)
		}
		if got != "" {
			t.Fatalf("raw %q: got %q, want empty", raw, got)
		}
	}
}

func TestSuggestionRemembersPriorOutput(t *testing.T) {
	fc := newFakeCompleter("Mention 529 plan options", "Ask about the GPS college goal")
	e := NewSuggestion(fc)

	first, err := e.Generate(context.Background(), "Client: College is on my mind", false)
	if err != nil || first != "Mention 529 plan options" {
		t.Fatalf("first = %q, %v", first, err)
	}

	if _, err := e.Generate(context.Background(), "Client: Still thinking about college", false); err != nil {
		t.Fatal(err)
	}
	user := fc.request(1).User
	if !strings.Contains(user, "Prior suggestions already given") || !strings.Contains(user, "Mention 529 plan options") {
		t.Fatalf("second prompt missing prior suggestion memory: %q", user)
	}
	// The sentinel never enters the memory.
	if strings.Contains(fc.request(0).User, "Prior suggestions") {
		t.Fatalf("first prompt should carry no prior list: %q", fc.request(0).User)
	}
}

func TestSuggestionCoachingVariant(t *testing.T) {
	fc := newFakeCompleter("Pivot to tax-loss harvesting. Why: client raised gains twice.")
	e := NewSuggestion(fc)

	if _, err := e.Generate(context.Background(), "Client: Gains worry me", true); err != nil {
		t.Fatal(err)
	}
	req := fc.request(0)
	if req.System != coachingSuggestionPrompt {
		t.Fatal("coaching mode did not select the coaching prompt")
	}
	if req.MaxTokens != 120 {
		t.Fatalf("coaching max tokens = %d, want 120", req.MaxTokens)
	}

	fc2 := newFakeCompleter("Mention Parametric direct indexing")
	e2 := NewSuggestion(fc2)
	if _, err := e2.Generate(context.Background(), "Client: Gains worry me", false); err != nil {
		t.Fatal(err)
	}
	if got := fc2.request(0).MaxTokens; got != 40 {
		t.Fatalf("standard max tokens = %d, want 40", got)
	}
}

func TestSuggestionToleratesTruncation(t *testing.T) {
	fc := &fakeCompleter{queue: []completion{{raw: "Mention donor-advised", err: llm.ErrTruncated}}}
	e := NewSuggestion(fc)

	got, err := e.Generate(context.Background(), "Client: charity matters to us", false)
	if err != nil {
		t.Fatalf("truncation should not fail the run: %v", err)
	}
	if got != "Mention donor-advised" {
		t.Fatalf("got %q", got)
	}
}

func TestSuggestionPropagatesFailure(t *testing.T) {
	fc := &fakeCompleter{queue: []completion{{err: errors.New("status=500")}}}
	e := NewSuggestion(fc)

	if _, err := e.Generate(context.Background(), "Client: hello", false); err == nil {
		t.Fatal("expected error")
	}
}
