package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/madhusmita6505/mads-poc/internal/crm"
	"github.com/madhusmita6505/mads-poc/internal/engine"
	"github.com/madhusmita6505/mads-poc/internal/session"
	"github.com/madhusmita6505/mads-poc/internal/transcript"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  65536,
	WriteBufferSize: 65536,
	CheckOrigin: func(r *http.Request) bool {
		// The operator console may be served from a different origin in dev.
		return true
	},
}

// wsSink serializes outbound events onto the browser connection. gorilla
// conns allow one concurrent writer, and engine completions land from many
// goroutines, so writes go through a mutex.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// inboundMessage is the union of all browser control messages.
type inboundMessage struct {
	Type             string   `json:"type"`
	SampleRate       int      `json:"sampleRate,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	Mode             string   `json:"mode,omitempty"`
	Enabled          bool     `json:"enabled,omitempty"`
	ClientID         string   `json:"client_id,omitempty"`
	DiscussionPoints []string `json:"discussion_points,omitempty"`
}

// serveAudioWS is the main session endpoint. Protocol: one JSON config
// message first, then interleaved binary audio frames ([source byte][pcm16])
// and JSON control messages. Every server-to-browser payload is a typed
// event from the session package.
func (h *Handlers) serveAudioWS(c echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Errorw("ws upgrade failed", "err", err)
		return nil
	}
	defer func() { _ = conn.Close() }()
	h.log.Info("browser connected")

	sink := &wsSink{conn: conn}
	sess := session.New(session.Deps{
		Sink:         sink,
		Suggestion:   engine.NewSuggestion(h.llm),
		Intelligence: engine.NewIntelligence(h.llm),
		Compliance:   engine.NewCompliance(h.llm),
		Todo:         engine.NewTodo(h.llm),
		WordCloud:    engine.NewWordCloud(h.llm),
		Tracker:      engine.NewTracker(h.llm),
		PostCall:     engine.NewPostCall(h.llm),
		Planner:      h.planner,
		NewChannel: func(label string, vad transcript.VADConfig) session.Channel {
			return transcript.NewConnection(h.cfg.OpenAIKey, h.cfg.TranscriptionModel, label, vad)
		},
	})
	defer sess.Close()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			h.log.Infow("browser disconnected", "err", err)
			return nil
		}
		switch mt {
		case websocket.BinaryMessage:
			sess.RouteAudio(data)
		case websocket.TextMessage:
			var msg inboundMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				h.log.Warnw("invalid control message", "err", err)
				continue
			}
			h.handleControl(sess, sink, msg)
		}
	}
}

func (h *Handlers) handleControl(sess *session.Session, sink *wsSink, msg inboundMessage) {
	switch msg.Type {
	case "config":
		h.log.Infow("audio config", "sample_rate", msg.SampleRate, "sources", msg.Sources, "mode", msg.Mode)
		sources := msg.Sources
		if len(sources) == 0 {
			sources = []string{"mic"}
		}
		sess.ConnectSources(sources, msg.Mode == "simulation")
	case "ping":
		_ = sink.Send(session.PongEvent{Type: "pong"})
	case "coaching_mode":
		sess.SetCoaching(msg.Enabled)
	case "client_context":
		client, err := h.store.Get(msg.ClientID)
		if err != nil {
			h.log.Errorw("client lookup failed", "err", err)
			return
		}
		if client == nil {
			h.log.Warnw("client not found", "client_id", msg.ClientID)
			return
		}
		sess.SetClientContext(crm.ContextPrompt(client), msg.DiscussionPoints)
		h.log.Infow("client context loaded", "client", client.Name, "points", len(msg.DiscussionPoints))
	case "set_discussion_points":
		if len(msg.DiscussionPoints) > 0 {
			sess.SetDiscussionPoints(msg.DiscussionPoints)
		}
	case "request_discussion_suggestions":
		go sess.SuggestDiscussionPoints()
	case "generate_summary":
		go sess.GeneratePostCallSummary()
	default:
		h.log.Debugw("unknown control message", "type", msg.Type)
	}
}
