package engine

import (
	"context"
	"sync"

	"github.com/madhusmita6505/mads-poc/internal/llm"
)

// fakeCompleter serves canned completions in order (the last one repeats)
// and records every request for prompt assertions.
type completion struct {
	raw string
	err error
}

type fakeCompleter struct {
	mu       sync.Mutex
	queue    []completion
	requests []llm.Request
}

func newFakeCompleter(raws ...string) *fakeCompleter {
	f := &fakeCompleter{}
	for _, r := range raws {
		f.queue = append(f.queue, completion{raw: r})
	}
	return f
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.queue) == 0 {
		return "", nil
	}
	c := f.queue[0]
	if len(f.queue) > 1 {
		f.queue = f.queue[1:]
	}
	return c.raw, c.err
}

func (f *fakeCompleter) request(i int) llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
