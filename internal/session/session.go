package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/engine"
	"github.com/madhusmita6505/mads-poc/internal/logging"
	"github.com/madhusmita6505/mads-poc/internal/transcript"
)

// Audio source IDs: the first byte of each binary audio packet.
const (
	SourceMic     byte = 0x01 // advisor's microphone
	SourceSpeaker byte = 0x02 // system speaker (counterparty's voice)
)

// SpeakerLabels maps source IDs to transcript speaker labels.
var SpeakerLabels = map[byte]string{
	SourceMic:     "Advisor",
	SourceSpeaker: "Client",
}

// Line is one immutable finalized transcript line.
type Line struct {
	Speaker string
	Text    string
}

// Channel is one live transcription connection for one speaker label.
// Satisfied by *transcript.Connection; faked in tests.
type Channel interface {
	Connect() error
	SendAudio(pcm []byte)
	Events() <-chan transcript.Event
	Close() error
}

// ChannelFactory builds an unconnected Channel for a speaker label.
type ChannelFactory func(label string, vad transcript.VADConfig) Channel

// Engine interfaces, one per capability. Implemented by internal/engine.
type (
	SuggestionEngine interface {
		Generate(ctx context.Context, transcript string, coaching bool) (string, error)
	}
	IntelligenceEngine interface {
		Analyze(ctx context.Context, transcript string) (*engine.Profile, error)
	}
	ComplianceEngine interface {
		Scan(ctx context.Context, transcript string) ([]engine.Flag, error)
	}
	TodoEngine interface {
		Extract(ctx context.Context, transcript string) ([]string, error)
	}
	WordCloudEngine interface {
		Analyze(ctx context.Context, transcript string) ([]engine.Topic, error)
	}
	TrackerEngine interface {
		SetPoints(points []string)
		Points() []engine.Point
		HasPoints() bool
		Evaluate(ctx context.Context, transcript string) (*engine.TrackerUpdate, error)
	}
	PostCallEngine interface {
		GenerateSummary(ctx context.Context, transcript string) (*engine.Report, error)
	}
	PlannerEngine interface {
		Suggest(ctx context.Context, clientContext, transcript string) ([]string, error)
	}
)

// Deps bundles the session's collaborators.
type Deps struct {
	Sink         Sink
	Suggestion   SuggestionEngine
	Intelligence IntelligenceEngine
	Compliance   ComplianceEngine
	Todo         TodoEngine
	WordCloud    WordCloudEngine
	Tracker      TrackerEngine
	PostCall     PostCallEngine
	Planner      PlannerEngine
	NewChannel   ChannelFactory
	Triggers     TriggerSet // zero value means DefaultTriggers
}

// Session orchestrates one advisor call: it bridges browser audio to the
// per-speaker transcription channels, accumulates the speaker-labeled
// transcript, and fans each finalized utterance out to all engine triggers
// concurrently. Engine results go back to the sink in completion order.
type Session struct {
	ID   string
	log  *zap.SugaredLogger
	deps Deps

	suggestionGate   *Trigger
	intelligenceGate *Trigger
	complianceGate   *Trigger
	todoGate         *Trigger
	wordCloudGate    *Trigger
	trackerGate      *Trigger

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	lines          []Line
	fullTranscript string
	contextPrompt  string
	coaching       bool
	simulation     bool
	simulationTurn int
	suggestionSeq  int
	channels       map[byte]Channel
	configured     bool
	closed         bool
}

// New constructs a Session. A nil NewChannel factory must be supplied before
// ConnectSources is called (tests inject fakes; httpserver injects the real
// transcription connection).
func New(deps Deps) *Session {
	if (deps.Triggers == TriggerSet{}) {
		deps.Triggers = DefaultTriggers
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:               id,
		log:              logging.Sugar().With("session", id[:8]),
		deps:             deps,
		suggestionGate:   NewTrigger(deps.Triggers.Suggestion),
		intelligenceGate: NewTrigger(deps.Triggers.Intelligence),
		complianceGate:   NewTrigger(deps.Triggers.Compliance),
		todoGate:         NewTrigger(deps.Triggers.Todo),
		wordCloudGate:    NewTrigger(deps.Triggers.WordCloud),
		trackerGate:      NewTrigger(deps.Triggers.Tracker),
		ctx:              ctx,
		cancel:           cancel,
		channels:         make(map[byte]Channel),
	}
}

// -- Client surface helpers ------------------------------------------------

func (s *Session) send(v interface{}) {
	if err := s.deps.Sink.Send(v); err != nil {
		s.log.Warnw("send to client failed", "err", err)
	}
}

// SendStatus pushes a status advisory to the client surface.
func (s *Session) SendStatus(msg string) {
	s.send(StatusEvent{Type: "status", Message: msg})
}

func (s *Session) sendError(msg string) {
	s.send(ErrorEvent{Type: "error", Message: msg})
}

// -- Mode and context ------------------------------------------------------

// SetCoaching toggles the suggestion prompt variant.
func (s *Session) SetCoaching(enabled bool) {
	s.mu.Lock()
	s.coaching = enabled
	s.mu.Unlock()
	s.log.Infow("coaching mode", "enabled", enabled)
}

// SetClientContext installs the rendered CRM context block prefixed to every
// engine transcript, and optionally seeds the discussion checklist.
func (s *Session) SetClientContext(contextPrompt string, discussionPoints []string) {
	s.mu.Lock()
	s.contextPrompt = contextPrompt
	s.mu.Unlock()
	if len(discussionPoints) > 0 {
		s.SetDiscussionPoints(discussionPoints)
	}
}

// SetDiscussionPoints replaces the tracker checklist and echoes a snapshot.
func (s *Session) SetDiscussionPoints(points []string) {
	s.deps.Tracker.SetPoints(points)
	s.send(TrackerEvent{Type: "discussion_tracker_update", Points: s.deps.Tracker.Points(), Nudge: ""})
}

// -- Channel setup ---------------------------------------------------------

// ConnectSources opens the transcription channels for the session. In
// simulation mode a single physical channel carries both parties, with
// tighter VAD so segments split on the brief pauses between speakers; the
// speaker label is then alternated per finalized utterance, which is a
// best-effort heuristic rather than diarization. A failed open is reported
// and does not affect sibling channels.
//
// Configuration is accepted once per session. A repeated config message
// would otherwise replace the channel map entries while the displaced
// connections and their pumps live on.
func (s *Session) ConnectSources(sources []string, simulation bool) {
	s.mu.Lock()
	if s.configured {
		s.mu.Unlock()
		s.log.Warn("sources already connected, ignoring reconfigure")
		return
	}
	s.configured = true
	s.simulation = simulation
	s.mu.Unlock()

	type want struct {
		source byte
		vad    transcript.VADConfig
	}
	var wanted []want
	if simulation {
		wanted = append(wanted, want{SourceSpeaker, transcript.SimulationVAD})
	} else {
		for _, src := range sources {
			switch src {
			case "mic":
				wanted = append(wanted, want{SourceMic, transcript.LiveVAD})
			case "speaker":
				wanted = append(wanted, want{SourceSpeaker, transcript.LiveVAD})
			}
		}
	}

	for _, w := range wanted {
		label := SpeakerLabels[w.source]
		ch := s.deps.NewChannel(label, w.vad)
		if err := ch.Connect(); err != nil {
			s.log.Errorw("transcription connect failed", "speaker", label, "err", err)
			s.sendError(fmt.Sprintf("Transcription connection failed for %s: %v", label, err))
			continue
		}
		s.mu.Lock()
		s.channels[w.source] = ch
		s.mu.Unlock()
		go s.consumeEvents(ch)
		s.SendStatus(fmt.Sprintf("%s transcription connected", label))
	}
}

func (s *Session) consumeEvents(ch Channel) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev, ok := <-ch.Events():
			if !ok {
				return
			}
			switch {
			case ev.Err != nil:
				s.sendError(ev.Err.Error())
			case ev.Final:
				s.handleFinal(ev.Speaker, ev.Text)
			default:
				s.handleInterim(ev.Speaker, ev.Text)
			}
		}
	}
}

// RouteAudio demuxes one browser audio packet (leading source byte + PCM)
// onto its channel. Unknown or unopened sources drop silently.
func (s *Session) RouteAudio(packet []byte) {
	if len(packet) < 2 {
		return
	}
	s.mu.Lock()
	ch := s.channels[packet[0]]
	s.mu.Unlock()
	if ch != nil {
		ch.SendAudio(packet[1:])
	}
}

// -- Transcript handling ---------------------------------------------------

func (s *Session) handleInterim(speaker, text string) {
	s.mu.Lock()
	if s.simulation {
		speaker = s.simulationSpeakerLocked()
	}
	s.mu.Unlock()
	s.send(TranscriptEvent{Type: "transcript", Text: text, IsFinal: false, Speaker: speaker})
}

func (s *Session) handleFinal(speaker, text string) {
	s.mu.Lock()
	if s.simulation {
		speaker = s.simulationSpeakerLocked()
		s.simulationTurn++
	}
	s.lines = append(s.lines, Line{Speaker: speaker, Text: text})
	s.fullTranscript = buildTranscript(s.lines)
	raw := s.fullTranscript
	input := s.withContextLocked()
	s.mu.Unlock()

	s.send(TranscriptEvent{Type: "transcript", Text: text, IsFinal: true, Speaker: speaker})
	s.evaluateEngines(raw, input)
}

func (s *Session) simulationSpeakerLocked() string {
	if s.simulationTurn%2 == 0 {
		return SpeakerLabels[SourceMic]
	}
	return SpeakerLabels[SourceSpeaker]
}

// buildTranscript joins finalized lines deterministically.
func buildTranscript(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Speaker+": "+l.Text)
	}
	return strings.Join(parts, "\n")
}

func (s *Session) withContextLocked() string {
	if s.contextPrompt != "" {
		return s.contextPrompt + "\n" + s.fullTranscript
	}
	return s.fullTranscript
}

// Transcript returns the accumulated speaker-labeled transcript.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullTranscript
}

func (s *Session) transcriptLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fullTranscript)
}

// -- Engine dispatch -------------------------------------------------------

// evaluateEngines checks all six triggers against the same snapshot,
// independently; any that fire dispatch their engine as an independent unit
// of work reporting back asynchronously, in whatever order completions land.
func (s *Session) evaluateEngines(raw, input string) {
	s.fireEngine(s.suggestionGate, raw, input, s.runSuggestion)
	s.fireEngine(s.intelligenceGate, raw, input, s.runIntelligence)
	s.fireEngine(s.complianceGate, raw, input, s.runCompliance)
	s.fireEngine(s.todoGate, raw, input, s.runTodo)
	s.fireEngine(s.wordCloudGate, raw, input, s.runWordCloud)
	if s.deps.Tracker.HasPoints() {
		// The tracker works from the raw transcript; the CRM context block
		// would only distract the point-status evaluation.
		s.fireEngine(s.trackerGate, raw, raw, s.runTracker)
	}
}

// fireEngine applies the trigger gate and spawns one invocation. The gate is
// acquired synchronously, before any goroutine starts, which closes the race
// window between two finalizations arriving in quick succession. Completion
// bookkeeping runs from the defer whether the engine succeeded or not.
func (s *Session) fireEngine(t *Trigger, raw, input string, run func(ctx context.Context, input string)) {
	if !t.TryAcquire(time.Now(), raw) {
		return
	}
	go func() {
		defer func() {
			t.Done(time.Now(), s.transcriptLen())
		}()
		run(s.ctx, input)
	}()
}

func (s *Session) runSuggestion(ctx context.Context, input string) {
	s.mu.Lock()
	s.suggestionSeq++
	id := fmt.Sprintf("sug_%d", s.suggestionSeq)
	coaching := s.coaching
	s.mu.Unlock()

	result, err := s.deps.Suggestion.Generate(ctx, input, coaching)
	if err != nil {
		s.log.Errorw("suggestion failed", "err", err)
		return
	}
	if result == "" {
		return
	}
	s.log.Infow("suggestion", "id", id, "text", result)
	s.send(SuggestionStartEvent{Type: "suggestion_start", ID: id})
	s.send(SuggestionChunkEvent{Type: "suggestion_chunk", ID: id, Text: result})
	s.send(SuggestionDoneEvent{Type: "suggestion_done", ID: id, HadSuggestion: true})
}

func (s *Session) runIntelligence(ctx context.Context, input string) {
	profile, err := s.deps.Intelligence.Analyze(ctx, input)
	if err != nil {
		s.log.Errorw("intelligence failed", "err", err)
		return
	}
	if profile.Empty() {
		s.log.Debug("intelligence returned no content, skipped")
		return
	}
	s.send(IntelligenceEvent{Type: "intelligence_update", Profile: *profile})
}

func (s *Session) runCompliance(ctx context.Context, input string) {
	flags, err := s.deps.Compliance.Scan(ctx, input)
	if err != nil {
		s.log.Errorw("compliance failed", "err", err)
		return
	}
	for _, f := range flags {
		s.send(ComplianceAlertEvent{
			Type:           "compliance_alert",
			Severity:       f.Severity,
			Issue:          f.Issue,
			Recommendation: f.Recommendation,
		})
	}
}

func (s *Session) runTodo(ctx context.Context, input string) {
	items, err := s.deps.Todo.Extract(ctx, input)
	if err != nil {
		s.log.Errorw("todo extraction failed", "err", err)
		return
	}
	if len(items) > 0 {
		s.send(TodoEvent{Type: "todo_update", Items: items})
	}
}

func (s *Session) runWordCloud(ctx context.Context, input string) {
	topics, err := s.deps.WordCloud.Analyze(ctx, input)
	if err != nil {
		s.log.Errorw("word cloud failed", "err", err)
		return
	}
	if len(topics) > 0 {
		s.send(WordCloudEvent{Type: "word_cloud_update", Topics: topics})
	}
}

func (s *Session) runTracker(ctx context.Context, input string) {
	update, err := s.deps.Tracker.Evaluate(ctx, input)
	if err != nil {
		s.log.Errorw("discussion tracker failed", "err", err)
		return
	}
	if update != nil {
		s.send(TrackerEvent{Type: "discussion_tracker_update", Points: update.Points, Nudge: update.Nudge})
	}
}

// -- One-shot operations ---------------------------------------------------

// SuggestDiscussionPoints runs the planner against the CRM context and any
// transcript so far, seeds the tracker with the result, and delivers it.
func (s *Session) SuggestDiscussionPoints() {
	s.mu.Lock()
	contextPrompt := s.contextPrompt
	transcriptText := s.fullTranscript
	s.mu.Unlock()

	points, err := s.deps.Planner.Suggest(s.ctx, contextPrompt, transcriptText)
	if err != nil {
		s.log.Errorw("discussion suggestions failed", "err", err)
		return
	}
	if len(points) == 0 {
		return
	}
	s.deps.Tracker.SetPoints(points)
	s.send(DiscussionSuggestionsEvent{Type: "discussion_suggestions", Points: points})
}

// GeneratePostCallSummary produces the post-call report, or an explicit
// error payload when generation fails or there is no transcript.
func (s *Session) GeneratePostCallSummary() {
	s.mu.Lock()
	raw := strings.TrimSpace(s.fullTranscript)
	input := s.withContextLocked()
	s.mu.Unlock()

	if raw == "" {
		s.log.Warn("no transcript to summarize")
		s.send(PostCallErrorEvent{Type: "post_call_summary", Error: "No transcript to summarize"})
		return
	}

	s.SendStatus("Generating post-call summary...")
	t0 := time.Now()
	report, err := s.deps.PostCall.GenerateSummary(s.ctx, input)
	if err != nil {
		s.log.Errorw("post-call summary failed", "elapsed_ms", time.Since(t0).Milliseconds(), "err", err)
		s.send(PostCallErrorEvent{Type: "post_call_summary", Error: "Failed to generate summary"})
		return
	}
	s.log.Infow("post-call summary generated", "elapsed_ms", time.Since(t0).Milliseconds())
	s.send(PostCallSummaryEvent{Type: "post_call_summary", Report: *report})
}

// -- Teardown --------------------------------------------------------------

// Close cancels the session context and tears down all channel connections.
// In-flight engine invocations are not forcibly cancelled; their results are
// simply dropped if the client surface is gone. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	channels := make([]Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		channels = append(channels, ch)
	}
	s.channels = make(map[byte]Channel)
	s.mu.Unlock()

	s.cancel()
	for _, ch := range channels {
		_ = ch.Close()
	}
	s.log.Info("session closed")
}
