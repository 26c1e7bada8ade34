package session

import "github.com/madhusmita6505/mads-poc/internal/engine"

// Sink is the outbound half of the client surface. Delivery is best-effort:
// a failed send is logged by the session and never aborts anything.
type Sink interface {
	Send(v interface{}) error
}

// Outbound events. Each is self-describing via its type tag so the client
// tolerates out-of-order arrival of engine results.

// TranscriptEvent carries interim (advisory) or finalized utterance text.
type TranscriptEvent struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
	Speaker string `json:"speaker"`
}

// SuggestionStartEvent opens a suggestion delivery.
type SuggestionStartEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// SuggestionChunkEvent carries suggestion text. The three-part shape lets the
// client render incrementally even though each suggestion arrives as a single
// chunk in this design.
type SuggestionChunkEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SuggestionDoneEvent closes a suggestion delivery.
type SuggestionDoneEvent struct {
	Type          string `json:"type"`
	ID            string `json:"id"`
	HadSuggestion bool   `json:"had_suggestion"`
}

// IntelligenceEvent is a full profile snapshot, not a delta.
type IntelligenceEvent struct {
	Type string `json:"type"`
	engine.Profile
}

// WordCloudEvent is a full topic snapshot.
type WordCloudEvent struct {
	Type   string         `json:"type"`
	Topics []engine.Topic `json:"topics"`
}

// ComplianceAlertEvent carries one flagged issue; flags are never batched.
type ComplianceAlertEvent struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// TodoEvent carries only newly discovered, already-deduplicated items.
type TodoEvent struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// TrackerEvent is a full checklist snapshot plus an optional nudge.
type TrackerEvent struct {
	Type   string         `json:"type"`
	Points []engine.Point `json:"points"`
	Nudge  string         `json:"nudge"`
}

// DiscussionSuggestionsEvent delivers planner output.
type DiscussionSuggestionsEvent struct {
	Type   string   `json:"type"`
	Points []string `json:"points"`
}

// PostCallSummaryEvent is the full report object.
type PostCallSummaryEvent struct {
	Type string `json:"type"`
	engine.Report
}

// PostCallErrorEvent is the explicit failure payload for summary generation.
type PostCallErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// StatusEvent is a terse operator-visible advisory.
type StatusEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorEvent is a terse operator-visible error advisory.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PongEvent answers a heartbeat ping.
type PongEvent struct {
	Type string `json:"type"`
}
