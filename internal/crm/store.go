package crm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Account is one client account record.
type Account struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Program         string   `json:"program"`
	Value           float64  `json:"value"`
	HoldingsSummary string   `json:"holdings_summary"`
	TotalTax365     bool     `json:"total_tax_365"`
	Flags           []string `json:"flags"`
}

// Goal is one planning goal with progress tracking.
type Goal struct {
	Name            string  `json:"name"`
	CurrentProgress float64 `json:"current_progress"`
	Target          float64 `json:"target"`
	Timeline        string  `json:"timeline"`
	OnTrack         bool    `json:"on_track"`
}

// Personal holds relationship details worth surfacing pre-call.
type Personal struct {
	Family     []string `json:"family"`
	Career     string   `json:"career"`
	LifeEvents []string `json:"life_events"`
	Interests  []string `json:"interests"`
}

// Conversation is one prior call summary.
type Conversation struct {
	Date        string   `json:"date"`
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
}

// Client is one client household record.
type Client struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	PrimaryContact    string         `json:"primary_contact"`
	ClientTier        string         `json:"client_tier"`
	TotalAUM          float64        `json:"total_aum"`
	RiskProfile       string         `json:"risk_profile"`
	ComplianceNotes   string         `json:"compliance_notes"`
	NextReviewDue     string         `json:"next_review_due"`
	Accounts          []Account      `json:"accounts"`
	Goals             []Goal         `json:"gps_goals"`
	Personal          Personal       `json:"personal"`
	PastConversations []Conversation `json:"past_conversations"`
}

// Summary is the reduced listing shape returned by search.
type Summary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PrimaryContact string  `json:"primary_contact"`
	ClientTier     string  `json:"client_tier"`
	TotalAUM       float64 `json:"total_aum"`
	NextReviewDue  string  `json:"next_review_due"`
}

// Store reads client records from a JSON fixture. Read-only; records are
// loaded per call so edits to the fixture show up without a restart.
type Store struct {
	Path string
}

// NewStore constructs a store over the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) load() ([]Client, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load client data: %w", err)
	}
	var clients []Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse client data: %w", err)
	}
	return clients, nil
}

// Search returns summaries of clients matching q against name, id, or
// primary contact. Empty q returns everyone.
func (s *Store) Search(q string) ([]Summary, error) {
	clients, err := s.load()
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	out := make([]Summary, 0, len(clients))
	for _, c := range clients {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.ID), q) &&
			!strings.Contains(strings.ToLower(c.PrimaryContact), q) {
			continue
		}
		out = append(out, Summary{
			ID:             c.ID,
			Name:           c.Name,
			PrimaryContact: c.PrimaryContact,
			ClientTier:     c.ClientTier,
			TotalAUM:       c.TotalAUM,
			NextReviewDue:  c.NextReviewDue,
		})
	}
	return out, nil
}

// Get returns the full record for one client id, or nil when not found.
func (s *Store) Get(id string) (*Client, error) {
	clients, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, nil
}

// ContextPrompt renders the CRM context block prefixed to every engine
// transcript for a session bound to this client.
func ContextPrompt(c *Client) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n=== CLIENT CONTEXT (from Morgan Stanley CRM) ===\n")
	fmt.Fprintf(&b, "Client: %s | Tier: %s | AUM: $%.0f | Risk: %s\n", c.Name, c.ClientTier, c.TotalAUM, c.RiskProfile)
	notes := c.ComplianceNotes
	if notes == "" {
		notes = "N/A"
	}
	fmt.Fprintf(&b, "Compliance: %s\n\n", notes)

	b.WriteString("ACCOUNTS:\n")
	for _, a := range c.Accounts {
		program := a.Program
		if program == "" {
			program = "N/A"
		}
		holdings := a.HoldingsSummary
		if holdings == "" {
			holdings = "N/A"
		}
		fmt.Fprintf(&b, "  - %s (%s, %s): $%.0f - %s", a.Name, a.Type, program, a.Value, holdings)
		if a.TotalTax365 {
			b.WriteString(" [Total Tax 365 enrolled]")
		}
		if len(a.Flags) > 0 {
			fmt.Fprintf(&b, " FLAGS: %s", strings.Join(a.Flags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nGPS GOALS:\n")
	for _, g := range c.Goals {
		status := "BEHIND"
		if g.OnTrack {
			status = "ON TRACK"
		}
		fmt.Fprintf(&b, "  - %s: %.0f%% toward $%.0f by %s [%s]\n", g.Name, g.CurrentProgress, g.Target, g.Timeline, status)
	}

	b.WriteString("\nPERSONAL DETAILS:\n")
	if len(c.Personal.Family) > 0 {
		fmt.Fprintf(&b, "  Family: %s\n", strings.Join(c.Personal.Family, "; "))
	}
	if c.Personal.Career != "" {
		fmt.Fprintf(&b, "  Career: %s\n", c.Personal.Career)
	}
	if len(c.Personal.LifeEvents) > 0 {
		fmt.Fprintf(&b, "  Life Events: %s\n", strings.Join(c.Personal.LifeEvents, "; "))
	}
	if len(c.Personal.Interests) > 0 {
		fmt.Fprintf(&b, "  Interests: %s\n", strings.Join(c.Personal.Interests, "; "))
	}

	b.WriteString("\nRECENT CONVERSATIONS:\n")
	convs := c.PastConversations
	if len(convs) > 2 {
		convs = convs[:2]
	}
	for _, conv := range convs {
		fmt.Fprintf(&b, "  [%s] %s\n", conv.Date, conv.Summary)
		if len(conv.ActionItems) > 0 {
			fmt.Fprintf(&b, "    Action items: %s\n", strings.Join(conv.ActionItems, ", "))
		}
	}
	b.WriteString("=== END CLIENT CONTEXT ===\n")
	return b.String()
}
