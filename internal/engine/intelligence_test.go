package engine

import (
	"context"
	"testing"
)

func TestIntelligenceAppliesDefaults(t *testing.T) {
	e := NewIntelligence(newFakeCompleter(`{"sentiment":"positive","family":["Wife: Karen"]}`))

	p, err := e.Analyze(context.Background(), "Client: Karen and I just got back from Italy")
	if err != nil {
		t.Fatal(err)
	}
	if p.Empty() {
		t.Fatal("profile with sentiment and family should not be empty")
	}
	if p.ClientTier != "Unknown" {
		t.Fatalf("missing tier should default to Unknown, got %q", p.ClientTier)
	}
	// Absent list fields come back as empty slices, not nulls, so the client
	// surface never sees null arrays.
	if p.Interests == nil || p.KeyConcerns == nil || p.DocumentTriggers == nil {
		t.Fatal("absent list fields should default to empty slices")
	}
}

func TestIntelligenceEmptyObjectIsValidEmptyResult(t *testing.T) {
	e := NewIntelligence(newFakeCompleter(`{}`))

	p, err := e.Analyze(context.Background(), "Client: yes")
	if err != nil {
		t.Fatalf("an empty object is a valid nothing-to-report outcome, got %v", err)
	}
	if !p.Empty() {
		t.Fatalf("profile %+v should report empty", p)
	}
}

func TestIntelligenceMalformedCompletionFails(t *testing.T) {
	e := NewIntelligence(newFakeCompleter(`<html>bad gateway</html>`))

	if _, err := e.Analyze(context.Background(), "Client: hello"); err == nil {
		t.Fatal("expected error for malformed completion")
	}
}

func TestProfileEmpty(t *testing.T) {
	cases := []struct {
		name    string
		profile *Profile
		want    bool
	}{
		{"nil", nil, true},
		{"zero", &Profile{}, true},
		{"tier only", &Profile{ClientTier: "HNW"}, true},
		{"sentiment", &Profile{Sentiment: "neutral"}, false},
		{"family", &Profile{Family: []string{"Wife: Karen"}}, false},
		{"concerns", &Profile{KeyConcerns: []string{"fees"}}, false},
	}
	for _, tc := range cases {
		if got := tc.profile.Empty(); got != tc.want {
			t.Errorf("%s: Empty() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
