package events

import (
	"context"
	"sync"
)

// Message is one event captured by a Recorder.
type Message struct {
	Topic string
	Key   string
	Event interface{}
}

// Recorder keeps published events in memory so callers can inspect what was emitted.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, Message{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}
