package engine

import (
	"context"
	"strings"
	"testing"
)

func TestComplianceSeverityNormalized(t *testing.T) {
	fc := newFakeCompleter(`{"flags":[{"severity":"critical","issue":"Guaranteed return promised","recommendation":"Correct on the call"},{"severity":"info","issue":"Vague performance claim","recommendation":"Add disclosure"}]}`)
	e := NewCompliance(fc)

	flags, err := e.Scan(context.Background(), "Advisor: this is guaranteed to return 12%")
	if err != nil {
		t.Fatal(err)
	}
	if len(flags) != 2 {
		t.Fatalf("got %d flags", len(flags))
	}
	if flags[0].Severity != "critical" {
		t.Fatalf("critical downgraded to %q", flags[0].Severity)
	}
	if flags[1].Severity != "warning" {
		t.Fatalf("unknown severity %q, want normalized to warning", flags[1].Severity)
	}
}

func TestComplianceRemembersFlaggedIssues(t *testing.T) {
	fc := newFakeCompleter(
		`{"flags":[{"severity":"warning","issue":"Performance without disclosure","recommendation":"Disclose"}]}`,
		`{"flags":[]}`,
	)
	e := NewCompliance(fc)

	if _, err := e.Scan(context.Background(), "Advisor: the fund did 12% last year"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Scan(context.Background(), "Advisor: anyway, about your goals"); err != nil {
		t.Fatal(err)
	}

	user := fc.request(1).User
	if !strings.Contains(user, "Already flagged issues") || !strings.Contains(user, "Performance without disclosure") {
		t.Fatalf("second prompt missing flagged-issue memory: %q", user)
	}
}

func TestComplianceCleanTranscriptNoFlags(t *testing.T) {
	e := NewCompliance(newFakeCompleter(`{"flags":[]}`))

	flags, err := e.Scan(context.Background(), "Client: how was your weekend")
	if err != nil {
		t.Fatal(err)
	}
	if len(flags) != 0 {
		t.Fatalf("got %v, want none", flags)
	}
}

func TestComplianceMalformedCompletionFails(t *testing.T) {
	e := NewCompliance(newFakeCompleter(`{flags: broken`))

	if _, err := e.Scan(context.Background(), "Advisor: hello"); err == nil {
		t.Fatal("expected error for malformed completion")
	}
}
