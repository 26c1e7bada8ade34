package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/madhusmita6505/mads-poc/internal/llm"
)

// Completer is the minimal interface every engine needs from the generation
// service. Satisfied by *llm.Client; faked in tests.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Profile is the structured client-intelligence result. Every field has a
// defined default so missing keys and explicitly empty values look the same
// to the orchestrator.
type Profile struct {
	Family                []string `json:"family"`
	LifeEvents            []string `json:"life_events"`
	Interests             []string `json:"interests"`
	Career                []string `json:"career"`
	KeyConcerns           []string `json:"key_concerns"`
	ReferralOpportunities []string `json:"referral_opportunities"`
	ProductSignals        []string `json:"ms_product_signals"`
	ClientTier            string   `json:"client_tier"`
	Sentiment             string   `json:"sentiment"`
	SentimentDetail       string   `json:"sentiment_detail"`
	RiskProfile           string   `json:"risk_profile"`
	RiskDetail            string   `json:"risk_detail"`
	DocumentTriggers      []string `json:"document_triggers"`
}

// Empty reports whether the profile carries nothing worth delivering.
func (p *Profile) Empty() bool {
	if p == nil {
		return true
	}
	hasProfile := len(p.Family) > 0 || len(p.LifeEvents) > 0 || len(p.Interests) > 0 || len(p.Career) > 0
	hasIntel := p.Sentiment != "" || len(p.KeyConcerns) > 0
	return !hasProfile && !hasIntel
}

func (p *Profile) applyDefaults() {
	if p.Family == nil {
		p.Family = []string{}
	}
	if p.LifeEvents == nil {
		p.LifeEvents = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Career == nil {
		p.Career = []string{}
	}
	if p.KeyConcerns == nil {
		p.KeyConcerns = []string{}
	}
	if p.ReferralOpportunities == nil {
		p.ReferralOpportunities = []string{}
	}
	if p.ProductSignals == nil {
		p.ProductSignals = []string{}
	}
	if p.DocumentTriggers == nil {
		p.DocumentTriggers = []string{}
	}
	if p.ClientTier == "" {
		p.ClientTier = "Unknown"
	}
}

// Flag is one compliance issue surfaced by the compliance engine.
type Flag struct {
	Severity       string `json:"severity"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// Topic is one weighted word-cloud entry.
type Topic struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
	Tone   string `json:"tone"`
}

// Point is one tracked discussion point.
type Point struct {
	Text   string `json:"text"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Discussion point statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDiscussed  = "discussed"
)

// TrackerUpdate is the full checklist snapshot plus an optional nudge.
type TrackerUpdate struct {
	Points []Point `json:"points"`
	Nudge  string  `json:"nudge"`
}

// CRMActivityLog is the structured CRM entry inside a post-call report.
type CRMActivityLog struct {
	ActivityType         string   `json:"activity_type"`
	ContactMethod        string   `json:"contact_method"`
	MeetingPurpose       string   `json:"meeting_purpose"`
	Attendees            string   `json:"attendees"`
	AccountsDiscussed    []string `json:"accounts_discussed"`
	ProductsDiscussed    []string `json:"products_discussed"`
	RiskProfileConfirmed bool     `json:"risk_profile_confirmed"`
	SuitabilityNotes     string   `json:"suitability_notes"`
	DisclosureNotes      string   `json:"disclosure_notes"`
	ClientSentiment      string   `json:"client_sentiment"`
	AssetsInMotion       string   `json:"assets_in_motion"`
	ReferralOpportunity  string   `json:"referral_opportunities"`
	NextContactDate      string   `json:"next_contact_date"`
	NextContactType      string   `json:"next_contact_type"`
}

// Report is the post-call intelligence report.
type Report struct {
	Summary           string         `json:"summary"`
	FollowUpEmail     string         `json:"follow_up_email"`
	ActionItems       []string       `json:"action_items"`
	ClientInsights    []string       `json:"client_insights"`
	NextMeetingTopics []string       `json:"next_meeting_topics"`
	ComplianceNotes   []string       `json:"compliance_notes"`
	CRMActivityLog    CRMActivityLog `json:"crm_activity_log"`
}

// decodeJSON parses a model completion that should be a JSON object.
// Malformed content is a recoverable per-invocation failure; an empty object
// is not an error, it decodes to the zero value and callers decide whether
// that means "nothing to report".
func decodeJSON(raw string, v interface{}) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("empty completion")
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("malformed completion: %w", err)
	}
	return nil
}

// priorList renders previously surfaced output for prompt injection so the
// model avoids repeating itself.
func priorList(header string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(header)
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}
