package transcript

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// RealtimeURL is the hosted realtime transcription endpoint.
const RealtimeURL = "wss://api.openai.com/v1/realtime?intent=transcription"

// Event is one observable output of a channel connection. Interim events
// carry the accumulated text of the in-progress utterance; final events carry
// one complete utterance. Err is set for mid-stream protocol errors, which
// are advisory and do not close the connection.
type Event struct {
	Speaker string
	Text    string
	Final   bool
	Err     error
}

// VADConfig tunes server-side turn detection for one channel.
type VADConfig struct {
	SilenceDurationMs int
	Threshold         float64
	PrefixPaddingMs   int
}

// LiveVAD is used when each speaker has a dedicated physical channel.
var LiveVAD = VADConfig{SilenceDurationMs: 500, Threshold: 0.3, PrefixPaddingMs: 200}

// SimulationVAD splits a single mixed channel on shorter pauses so segments
// better match speaker turns.
var SimulationVAD = VADConfig{SilenceDurationMs: 300, Threshold: 0.2, PrefixPaddingMs: 100}

// Connection manages one streaming transcription connection scoped to one
// speaker label. Audio goes up as base64 pcm16 append messages; interim and
// finalized text come back on Events.
type Connection struct {
	apiKey  string
	model   string
	speaker string
	vad     VADConfig
	log     *zap.SugaredLogger

	events    chan Event
	audioData chan []byte
	stopCh    chan struct{}

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool

	currentText string
}

type sessionUpdateMessage struct {
	Type    string          `json:"type"`
	Session realtimeSession `json:"session"`
}

type realtimeSession struct {
	InputAudioFormat        string            `json:"input_audio_format"`
	InputAudioTranscription transcriptionOpts `json:"input_audio_transcription"`
	TurnDetection           turnDetection     `json:"turn_detection"`
	NoiseReduction          noiseReduction    `json:"input_audio_noise_reduction"`
}

type transcriptionOpts struct {
	Model    string `json:"model"`
	Language string `json:"language"`
}

type turnDetection struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
}

type noiseReduction struct {
	Type string `json:"type"`
}

type audioAppendMessage struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

type serverEvent struct {
	Type       string `json:"type"`
	Delta      string `json:"delta,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Error      struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewConnection creates an unconnected channel bridge for one speaker label.
func NewConnection(apiKey, model, speaker string, vad VADConfig) *Connection {
	return &Connection{
		apiKey:    apiKey,
		model:     model,
		speaker:   speaker,
		vad:       vad,
		log:       logging.Sugar().With("speaker", speaker),
		events:    make(chan Event, 100),
		audioData: make(chan []byte, 1000),
		stopCh:    make(chan struct{}),
	}
}

// Speaker returns the label this connection is scoped to.
func (c *Connection) Speaker() string { return c.speaker }

// Events returns the channel of interim/final transcript events.
func (c *Connection) Events() <-chan Event { return c.events }

// Connect dials the realtime endpoint, configures the transcription session,
// and starts the receive and audio-send loops. A failed dial leaves the
// channel unopened; the caller may retry by calling Connect again.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("openai api key is empty")
	}

	headers := map[string][]string{
		"Authorization": {"Bearer " + c.apiKey},
		"OpenAI-Beta":   {"realtime=v1"},
	}
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	t0 := time.Now()
	conn, resp, err := dialer.Dial(RealtimeURL, headers)
	if err != nil {
		if resp != nil {
			c.log.Errorw("transcription dial failed", "status", resp.StatusCode)
		}
		return fmt.Errorf("failed to connect to transcription service: %w", err)
	}
	c.log.Infow("transcription connected", "handshake_ms", time.Since(t0).Milliseconds())

	if err := conn.WriteJSON(sessionUpdateMessage{
		Type: "transcription_session.update",
		Session: realtimeSession{
			InputAudioFormat: "pcm16",
			InputAudioTranscription: transcriptionOpts{
				Model:    c.model,
				Language: "en",
			},
			TurnDetection: turnDetection{
				Type:              "server_vad",
				Threshold:         c.vad.Threshold,
				PrefixPaddingMs:   c.vad.PrefixPaddingMs,
				SilenceDurationMs: c.vad.SilenceDurationMs,
			},
			NoiseReduction: noiseReduction{Type: "near_field"},
		},
	}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to configure transcription session: %w", err)
	}

	c.conn = conn
	c.connected = true

	go c.handleMessages()
	go c.sendAudioData()
	return nil
}

// SendAudio queues raw PCM for delivery. It is a no-op when the channel is
// not open; audio loss on a closed channel is acceptable, not fatal.
func (c *Connection) SendAudio(pcm []byte) {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	if !connected {
		return
	}
	select {
	case c.audioData <- pcm:
	default:
		c.log.Warn("audio buffer full, dropping packet")
	}
}

// Close tears down the connection and cancels the receive loop. Idempotent.
// The events channel is deliberately left open: the receive loop may be
// mid-message when Close lands, and a send on a closed channel would panic
// the process. Late events land in the buffer and are never read.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	close(c.stopCh)
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.connected = false
	c.conn = nil
	c.log.Info("transcription connection closed")
	return nil
}

func (c *Connection) handleMessages() {
	for {
		select {
		case <-c.stopCh:
			return
		default:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()
			if conn == nil {
				return
			}
			_, message, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-c.stopCh:
				default:
					c.log.Infow("transcription receive loop ended", "err", err)
				}
				return
			}
			c.processMessage(message)
		}
	}
}

func (c *Connection) processMessage(message []byte) {
	var ev serverEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		c.log.Errorw("error unmarshaling server event", "err", err)
		return
	}

	switch ev.Type {
	case "conversation.item.input_audio_transcription.delta":
		if ev.Delta == "" {
			return
		}
		c.currentText += ev.Delta
		// Interims are advisory; drop rather than block a slow consumer.
		select {
		case c.events <- Event{Speaker: c.speaker, Text: c.currentText}:
		default:
		}
	case "conversation.item.input_audio_transcription.completed":
		c.currentText = ""
		text := ev.Transcript
		if text == "" {
			return
		}
		// Finals must never be lost downstream.
		select {
		case <-c.stopCh:
		case c.events <- Event{Speaker: c.speaker, Text: text, Final: true}:
		}
	case "input_audio_buffer.speech_started":
		c.currentText = ""
	case "transcription_session.created":
		c.log.Info("transcription session created")
	case "transcription_session.updated":
		c.log.Info("transcription session configured")
	case "error":
		msg := ev.Error.Message
		if msg == "" {
			msg = string(message)
		}
		c.log.Errorw("transcription service error", "err", msg)
		select {
		case c.events <- Event{Speaker: c.speaker, Err: fmt.Errorf("transcription [%s]: %s", c.speaker, msg)}:
		default:
		}
	}
}

func (c *Connection) sendAudioData() {
	for {
		select {
		case <-c.stopCh:
			return
		case pcm, ok := <-c.audioData:
			if !ok {
				return
			}
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()
			if conn == nil {
				return
			}
			msg := audioAppendMessage{
				Type:  "input_audio_buffer.append",
				Audio: base64.StdEncoding.EncodeToString(pcm),
			}
			if err := conn.WriteJSON(msg); err != nil {
				c.log.Errorw("error sending audio data", "err", err)
				return
			}
		}
	}
}
