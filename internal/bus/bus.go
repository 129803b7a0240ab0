// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

// Package bus routes inbound host pushes to subscribers by their type.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

// Payload holds every field of a push message except the type discriminator.
type Payload map[string]json.RawMessage

type Handler func(Payload)

type subscription struct {
	id uint64
	h  Handler
}

type Bus struct {
	mu        sync.Mutex
	subs      map[string][]subscription
	nextID    uint64
	listening atomic.Bool
	logger    *slog.Logger
	callLog   *logging.CallLogger
}

func New(logger *slog.Logger, callLog *logging.CallLogger) *Bus {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Bus{
		subs:    make(map[string][]subscription),
		logger:  logger,
		callLog: callLog,
	}
}

// Subscribe registers h for event. The returned function removes exactly this
// registration and may be called any number of times.
func (b *Bus) Subscribe(event string, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[event] = append(b.subs[event], subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *Bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[event]
	for i, s := range list {
		if s.id != id {
			continue
		}
		next := make([]subscription, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, event)
		} else {
			b.subs[event] = next
		}
		return
	}
}

// Subscribers reports how many handlers are registered for event.
func (b *Bus) Subscribers(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[event])
}

// Dispatch decodes one push message and delivers it to the handlers registered
// for its type at the moment dispatch begins.
func (b *Bus) Dispatch(raw []byte) {
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		b.logger.Warn("dropping malformed push message", "size", len(raw), "error", err)
		return
	}

	var event string
	if t, ok := msg[core.TypeField]; !ok || json.Unmarshal(t, &event) != nil || event == "" {
		return
	}
	delete(msg, core.TypeField)

	b.callLog.Log(core.Record{
		CorrelationID: uuid.New().String(),
		Operation:     event,
		Direction:     core.DirectionInbound,
		PayloadSize:   len(raw),
		Timestamp:     time.Now().UTC(),
	})

	b.mu.Lock()
	snapshot := append([]subscription(nil), b.subs[event]...)
	b.mu.Unlock()

	// each handler gets its own map so edits never leak to the next one
	for _, s := range snapshot {
		p := make(Payload, len(msg))
		for k, v := range msg {
			p[k] = v
		}
		s.h(p)
	}
}

// Listen installs the process-wide inbound listener on surface and blocks
// until the surface stops. Only one listener may ever be installed.
func (b *Bus) Listen(ctx context.Context, surface core.Surface) error {
	if !b.listening.CompareAndSwap(false, true) {
		return core.ErrListenerInstalled
	}

	b.logger.Info("inbound listener installed", "surface", surface.Name(), "type", surface.Type())
	var mu sync.Mutex
	err := surface.Open(ctx, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		b.Dispatch(data)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("surface %s: %w", surface.Name(), err)
	}
	return nil
}

// On subscribes h to event with the payload decoded into T.
func On[T any](b *Bus, event string, h func(T)) func() {
	return b.Subscribe(event, func(p Payload) {
		var v T
		raw, err := json.Marshal(p)
		if err == nil {
			err = json.Unmarshal(raw, &v)
		}
		if err != nil {
			b.logger.Warn("push payload does not match subscriber", "event", event, "error", err)
			return
		}
		h(v)
	})
}

// Scope collects subscriptions so a component can release all of them at once.
type Scope struct {
	bus *Bus

	mu       sync.Mutex
	releases []func()
	closed   bool
}

func NewScope(b *Bus) *Scope {
	return &Scope{bus: b}
}

func (s *Scope) Subscribe(event string, h Handler) {
	s.Add(s.bus.Subscribe(event, h))
}

// Add adopts an unsubscribe function. After Close it is released immediately.
func (s *Scope) Add(release func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return
	}
	s.releases = append(s.releases, release)
	s.mu.Unlock()
}

func (s *Scope) Bus() *Bus { return s.bus }

func (s *Scope) Close() {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.closed = true
	s.mu.Unlock()

	for _, r := range releases {
		r()
	}
}
