package crm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixture = `[
  {
    "id": "CH-1001",
    "name": "Whitfield Household",
    "primary_contact": "Daniel Whitfield",
    "client_tier": "HNW ($1M-$10M)",
    "total_aum": 4250000,
    "risk_profile": "moderate_aggressive",
    "compliance_notes": "Form CRS delivered.",
    "next_review_due": "2026-10-02",
    "accounts": [
      {"name": "Joint Brokerage", "type": "Brokerage", "program": "Select UMA", "value": 2600000,
       "holdings_summary": "Diversified", "total_tax_365": true, "flags": ["Concentration above 15%"]}
    ],
    "gps_goals": [
      {"name": "Retirement Income", "current_progress": 72, "target": 6000000, "timeline": "2034", "on_track": true},
      {"name": "College Fund", "current_progress": 41, "target": 400000, "timeline": "2029", "on_track": false}
    ],
    "personal": {
      "family": ["Wife: Karen"],
      "career": "VP of Engineering",
      "life_events": ["Considering early retirement"],
      "interests": ["Sailing"]
    },
    "past_conversations": [
      {"date": "2026-06-18", "summary": "Quarterly review.", "action_items": ["Send 529 comparison"]},
      {"date": "2026-03-09", "summary": "GPS update.", "action_items": []},
      {"date": "2025-12-01", "summary": "Year-end planning.", "action_items": []}
    ]
  },
  {
    "id": "CH-1002",
    "name": "Arora Family Trust",
    "primary_contact": "Priya Arora",
    "client_tier": "UHNW ($10M+)",
    "total_aum": 18400000,
    "risk_profile": "moderate",
    "accounts": [],
    "gps_goals": [],
    "personal": {},
    "past_conversations": []
  }
]`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewStore(path)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
}

func TestSearchMatchesNameIDAndContact(t *testing.T) {
	s := newTestStore(t)
	cases := []struct {
		q    string
		want string
	}{
		{"whitfield", "CH-1001"},
		{"ch-1002", "CH-1002"},
		{"priya", "CH-1002"},
	}
	for _, tc := range cases {
		got, err := s.Search(tc.q)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != tc.want {
			t.Fatalf("q=%q: got %+v, want single match %s", tc.q, got, tc.want)
		}
	}

	none, err := s.Search("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("q=nobody: got %+v, want none", none)
	}
}

func TestGetClient(t *testing.T) {
	s := newTestStore(t)

	c, err := s.Get("CH-1001")
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || c.Name != "Whitfield Household" || len(c.Accounts) != 1 {
		t.Fatalf("client = %+v", c)
	}

	missing, err := s.Get("CH-9999")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("got %+v for unknown id, want nil", missing)
	}
}

func TestStoreMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := s.Search(""); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestContextPromptRendering(t *testing.T) {
	s := newTestStore(t)
	c, err := s.Get("CH-1001")
	if err != nil {
		t.Fatal(err)
	}

	got := ContextPrompt(c)
	for _, want := range []string{
		"=== CLIENT CONTEXT (from Morgan Stanley CRM) ===",
		"Whitfield Household",
		"[Total Tax 365 enrolled]",
		"FLAGS: Concentration above 15%",
		"Retirement Income: 72% toward $6000000 by 2034 [ON TRACK]",
		"College Fund: 41% toward $400000 by 2029 [BEHIND]",
		"Family: Wife: Karen",
		"[2026-06-18] Quarterly review.",
		"Action items: Send 529 comparison",
		"=== END CLIENT CONTEXT ===",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q\n%s", want, got)
		}
	}
	// Only the two most recent conversations are rendered.
	if strings.Contains(got, "Year-end planning") {
		t.Error("context should cap recent conversations at two")
	}
}

func TestContextPromptNilClient(t *testing.T) {
	if got := ContextPrompt(nil); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
