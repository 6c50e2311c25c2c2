/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bus is the message-passing context threaded through controllers,
// commands and the editor. Delivery is synchronous and in subscription order;
// handlers may publish further messages.
package bus

import (
	"sync"

	applog "gocanvas/internal/log"
)

// Topic names a message kind, e.g. "drag:update".
type Topic string

// Message is one published notification.
type Message struct {
	Topic   Topic `json:"topic"`
	Payload any   `json:"payload,omitempty"`
}

// Handler receives messages.
type Handler func(Message)

type subscription struct {
	id int
	h  Handler
}

// Bus dispatches messages to subscribers.
type Bus struct {
	mu     sync.RWMutex
	next   int
	topics map[Topic][]subscription
	all    []subscription
}

func New() *Bus { return &Bus{topics: map[Topic][]subscription{}} }

// Subscribe registers h for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.topics[topic] = append(b.topics[topic], subscription{id: id, h: h})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.topics[topic] = without(b.topics[topic], id)
	}
}

// SubscribeAll registers h for every topic.
func (b *Bus) SubscribeAll(h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.all = append(b.all, subscription{id: id, h: h})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = without(b.all, id)
	}
}

// Publish delivers payload to topic subscribers first, then to catch-all
// subscribers. A nil Bus discards the message.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.topics[topic]...)
	subs = append(subs, b.all...)
	b.mu.RUnlock()
	if len(subs) == 0 {
		return
	}
	msg := Message{Topic: topic, Payload: payload}
	for _, s := range subs {
		s.h(msg)
	}
}

func without(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Recorder collects every message published on a bus. Tests and the demo use
// it to inspect notification order.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	cancel   func()
}

// Record starts recording all messages on b.
func Record(b *Bus) *Recorder {
	r := &Recorder{}
	r.cancel = b.SubscribeAll(func(m Message) {
		r.mu.Lock()
		r.Messages = append(r.Messages, m)
		r.mu.Unlock()
	})
	return r
}

func (r *Recorder) Stop() { r.cancel() }

// Topics returns the recorded topics in order.
func (r *Recorder) Topics() []Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Topic, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Topic
	}
	return out
}

// Last returns the most recent message on topic.
func (r *Recorder) Last(topic Topic) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Topic == topic {
			return r.Messages[i], true
		}
	}
	return Message{}, false
}

// Count returns how many messages were recorded on topic.
func (r *Recorder) Count(topic Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.Messages {
		if m.Topic == topic {
			n++
		}
	}
	return n
}

// LogAll logs every message at DEBUG; the returned func stops it.
func LogAll(b *Bus) func() {
	l := applog.WithComponent("bus")
	return b.SubscribeAll(func(m Message) {
		l.Debug("publish", "topic", string(m.Topic))
	})
}
