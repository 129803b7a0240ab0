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

// Package visibility tracks whether the panel is shown and keeps the host
// informed when it is dismissed.
package visibility

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/police-tablet/nui-bridge/internal/bus"
	"github.com/police-tablet/nui-bridge/internal/datasync"
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/catalog"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

// EscapeKey is the local cancellation input.
const EscapeKey = "Escape"

// Seeder accepts values pushed with the open event. *datasync.Cache satisfies it.
type Seeder interface {
	Seed(key datasync.Key, raw json.RawMessage) error
}

type Controller struct {
	mu        sync.Mutex
	visible   bool
	listeners []listener
	nextID    uint64

	seeder   Seeder
	seedable map[string]datasync.Key
	caller   catalog.Caller
	scope    *bus.Scope
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// New starts hidden and subscribes to the reserved open and close events.
func New(b *bus.Bus, seeder Seeder, caller catalog.Caller, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Controller{
		seeder:   seeder,
		seedable: make(map[string]datasync.Key),
		caller:   caller,
		scope:    bus.NewScope(b),
		logger:   logger,
	}
	for _, k := range datasync.Keys() {
		c.seedable[string(k)] = k
	}
	c.scope.Subscribe(core.EventPanelOpen, c.handleOpen)
	c.scope.Subscribe(core.EventPanelClose, func(bus.Payload) { c.hide("host") })
	return c
}

func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// handleOpen seeds before the state flips so the first render already has data.
// Opening while visible only reseeds.
func (c *Controller) handleOpen(p bus.Payload) {
	for field, raw := range p {
		key, ok := c.seedable[field]
		if !ok {
			continue
		}
		if err := c.seeder.Seed(key, raw); err != nil {
			c.logger.Warn("ignoring open payload seed", "key", key, "error", err)
		}
	}

	c.mu.Lock()
	changed := !c.visible
	c.visible = true
	c.mu.Unlock()

	if changed {
		c.logger.Info("panel opened")
		c.emit(true)
	}
}

// HandleKey reacts to local key input while the panel is shown.
func (c *Controller) HandleKey(key string) {
	if key == EscapeKey {
		c.hide("escape")
	}
}

// Close is the explicit user close action.
func (c *Controller) Close() {
	c.hide("user")
}

func (c *Controller) hide(source string) {
	c.mu.Lock()
	if !c.visible {
		c.mu.Unlock()
		return
	}
	c.visible = false
	c.mu.Unlock()

	c.logger.Info("panel closed", "source", source)
	c.emit(false)
	c.notifyHost()
}

// notifyHost lets the host restore its own input focus. Failures never hold
// the panel open.
func (c *Controller) notifyHost() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := catalog.CloseTablet.Call(context.Background(), c.caller, catalog.None{}); err != nil {
			c.logger.Warn("close notification failed", "operation", catalog.CloseTablet.Name(), "error", err)
		}
	}()
}

type listener struct {
	id uint64
	fn func(bool)
}

// OnChange registers fn for every visibility transition. Listeners run in
// registration order.
func (c *Controller) OnChange(fn func(visible bool)) (release func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, l := range c.listeners {
				if l.id == id {
					c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Controller) emit(visible bool) {
	c.mu.Lock()
	snapshot := append([]listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range snapshot {
		l.fn(visible)
	}
}

// Stop releases the event subscriptions and waits for pending close
// notifications to settle.
func (c *Controller) Stop() {
	c.scope.Close()
	c.wg.Wait()
}
