package session

import (
	"strings"
	"sync"
	"time"
)

// TriggerConfig holds the two thresholds that gate one engine's re-invocation.
type TriggerConfig struct {
	Cooldown    time.Duration
	MinNewChars int
}

// TriggerSet carries one config per analysis engine.
type TriggerSet struct {
	Suggestion   TriggerConfig
	Intelligence TriggerConfig
	Compliance   TriggerConfig
	Todo         TriggerConfig
	WordCloud    TriggerConfig
	Tracker      TriggerConfig
}

// DefaultTriggers balances responsiveness against generation-call cost and
// rate limits. Short cooldowns feel live; the minimum-growth gate prevents
// firing on trivial one-word utterances.
var DefaultTriggers = TriggerSet{
	Suggestion:   TriggerConfig{Cooldown: 3 * time.Second, MinNewChars: 30},
	Intelligence: TriggerConfig{Cooldown: 8 * time.Second, MinNewChars: 50},
	Compliance:   TriggerConfig{Cooldown: 5 * time.Second, MinNewChars: 40},
	Todo:         TriggerConfig{Cooldown: 6 * time.Second, MinNewChars: 40},
	WordCloud:    TriggerConfig{Cooldown: 5 * time.Second, MinNewChars: 40},
	Tracker:      TriggerConfig{Cooldown: 5 * time.Second, MinNewChars: 40},
}

// Trigger decides, on each finalized transcript line, whether to re-invoke
// one engine. It is the mutual-exclusion gate for that engine: TryAcquire
// marks the engine running in the same critical section that passes the
// gates, so two finalizations arriving back-to-back can never both dispatch.
type Trigger struct {
	cfg TriggerConfig

	mu             sync.Mutex
	lastRunAt      time.Time
	charsAtLastRun int
	running        bool
}

// NewTrigger builds a trigger with the given thresholds.
func NewTrigger(cfg TriggerConfig) *Trigger {
	return &Trigger{cfg: cfg}
}

// TryAcquire reports whether the engine should fire for the given transcript
// snapshot. On true the trigger is already marked running; the caller must
// guarantee Done runs when the invocation completes.
func (t *Trigger) TryAcquire(now time.Time, transcript string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return false
	}
	if now.Sub(t.lastRunAt) < t.cfg.Cooldown {
		return false
	}
	if len(transcript)-t.charsAtLastRun < t.cfg.MinNewChars {
		return false
	}
	if strings.TrimSpace(transcript) == "" {
		return false
	}
	t.running = true
	return true
}

// Done records completion bookkeeping and releases the gate. It runs
// unconditionally, success or failure, so a persistently failing engine
// still pays the cooldown instead of spinning at full rate.
func (t *Trigger) Done(now time.Time, transcriptLen int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRunAt = now
	if transcriptLen > t.charsAtLastRun {
		t.charsAtLastRun = transcriptLen
	}
	t.running = false
}

// Running reports whether an invocation is in flight.
func (t *Trigger) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
