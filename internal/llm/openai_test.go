package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(srvURL string) *Client {
	return &Client{
		HTTPClient: http.DefaultClient,
		APIKey:     "test-key",
		Model:      "gpt-5.2",
		BaseURL:    srvURL,
	}
}

func chatResponse(content, finishReason string) string {
	resp := chatCompletionsResponse{
		ID:     "chatcmpl-1",
		Object: "chat.completion",
		Model:  "gpt-5.2",
		Choices: []chatChoice{
			{Index: 0, FinishReason: finishReason, Message: chatMessage{Role: "assistant", Content: content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestCompleteMissingAPIKey(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")
	c.APIKey = ""
	_, err := c.Complete(context.Background(), Request{System: "s", User: "u"})
	if err == nil || !strings.Contains(err.Error(), "api key") {
		t.Fatalf("err = %v, want api key error", err)
	}
}

func TestCompleteSuccess(t *testing.T) {
	var captured chatCompletionsRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(chatResponse("  hello there  ", "stop")))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Complete(context.Background(), Request{
		System:      "you are terse",
		User:        "say hello",
		MaxTokens:   40,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello there" {
		t.Fatalf("content = %q, want trimmed", got)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("auth header = %q", auth)
	}
	if captured.Model != "gpt-5.2" || captured.MaxCompletionTokens != 40 {
		t.Fatalf("request = %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
	if captured.ResponseFormat != nil {
		t.Fatal("response_format should be absent without JSON mode")
	}
}

func TestCompleteJSONModeSetsResponseFormat(t *testing.T) {
	var captured chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(chatResponse(`{"items":[]}`, "stop")))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Complete(context.Background(), Request{System: "s", User: "u", JSON: true}); err != nil {
		t.Fatal(err)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format = %+v, want json_object", captured.ResponseFormat)
	}
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Complete(context.Background(), Request{System: "s", User: "u"})
	if err == nil || !strings.Contains(err.Error(), "status=429") {
		t.Fatalf("err = %v, want status error", err)
	}
}

func TestCompleteBadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Complete(context.Background(), Request{System: "s", User: "u"}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Complete(context.Background(), Request{System: "s", User: "u"})
	if err == nil || !strings.Contains(err.Error(), "empty choices") {
		t.Fatalf("err = %v, want empty choices error", err)
	}
}

func TestCompleteTruncationReturnsPartialContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatResponse(`{"items":["cut off`, "length")))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Complete(context.Background(), Request{System: "s", User: "u"})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
	if got != `{"items":["cut off` {
		t.Fatalf("partial content = %q", got)
	}
}
