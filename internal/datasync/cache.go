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

// Package datasync keeps panel state consistent with the last known host
// truth through a keyed cache with explicit invalidation.
package datasync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/catalog"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

// maxRefetch bounds how often a read retries when invalidations keep landing
// while its fetch is in flight.
const maxRefetch = 3

// Policy tunes a key beyond explicit invalidation. StaleTime > 0 lets a value
// age out; RefetchInterval > 0 polls the key while it is watched.
type Policy struct {
	StaleTime       time.Duration
	RefetchInterval time.Duration
}

type query struct {
	fetch  func(ctx context.Context) (any, error)
	decode func(raw json.RawMessage) (any, error)
	policy Policy
}

type entry struct {
	value      any
	hasValue   bool
	stale      bool
	fetchedAt  time.Time
	generation uint64
}

type watcher struct {
	id uint64
	fn func(any)
}

type Cache struct {
	mu       sync.Mutex
	queries  map[Key]*query
	entries  map[Key]*entry
	watchers map[Key][]watcher
	pollers  map[Key]context.CancelFunc
	nextID   uint64

	group  singleflight.Group
	logger *slog.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		queries:  make(map[Key]*query),
		entries:  make(map[Key]*entry),
		watchers: make(map[Key][]watcher),
		pollers:  make(map[Key]context.CancelFunc),
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Define registers the fetch behind key. Redefining a key replaces its query
// and keeps any cached value.
func Define[T any](c *Cache, key Key, fetch func(ctx context.Context) (T, error), policy Policy) {
	q := &query{
		fetch: func(ctx context.Context) (any, error) { return fetch(ctx) },
		decode: func(raw json.RawMessage) (any, error) {
			var v T
			if err := catalog.Decode(raw, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
		policy: policy,
	}
	c.mu.Lock()
	c.queries[key] = q
	c.mu.Unlock()
}

// Read returns the cached value of key when fresh and fetches it otherwise.
func Read[T any](ctx context.Context, c *Cache, key Key) (T, error) {
	var zero T
	v, err := c.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %s holds %T", key, v)
	}
	return t, nil
}

// Get is the untyped form of Read.
func (c *Cache) Get(ctx context.Context, key Key) (any, error) {
	c.mu.Lock()
	q, ok := c.queries[key]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}
	if e := c.entries[key]; e != nil && c.freshLocked(e, q.policy) {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	// The shared fetch runs under the cache's context, so a reader that stops
	// waiting never fails the others or aborts the host call.
	ch := c.group.DoChan(string(key), func() (any, error) {
		return c.fetch(c.ctx, key, q)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) freshLocked(e *entry, p Policy) bool {
	if !e.hasValue || e.stale {
		return false
	}
	return p.StaleTime <= 0 || c.now().Sub(e.fetchedAt) < p.StaleTime
}

// fetch stores a result as fresh only when no invalidation landed while it
// was in flight.
func (c *Cache) fetch(ctx context.Context, key Key, q *query) (any, error) {
	var v any
	for attempt := 0; attempt < maxRefetch; attempt++ {
		gen := c.generation(key)

		var err error
		v, err = q.fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		e := c.entryLocked(key)
		if e.generation == gen {
			e.value, e.hasValue, e.stale, e.fetchedAt = v, true, false, c.now()
			c.mu.Unlock()
			c.notify(key, v)
			return v, nil
		}
		if e.hasValue && !e.stale {
			// seeded while the fetch was in flight
			seeded := e.value
			c.mu.Unlock()
			return seeded, nil
		}
		c.mu.Unlock()
		c.logger.Debug("refetching key invalidated mid-flight", "key", key, "attempt", attempt+1)
	}

	c.mu.Lock()
	e := c.entryLocked(key)
	e.value, e.hasValue, e.fetchedAt = v, true, c.now()
	c.mu.Unlock()
	c.notify(key, v)
	return v, nil
}

func (c *Cache) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(key).generation
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Seed writes a pushed value for key without a fetch.
func (c *Cache) Seed(key Key, raw json.RawMessage) error {
	c.mu.Lock()
	q, ok := c.queries[key]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}

	v, err := q.decode(raw)
	if err != nil {
		return fmt.Errorf("seed %s: %w", key, err)
	}

	c.mu.Lock()
	e := c.entryLocked(key)
	e.generation++
	e.value, e.hasValue, e.stale, e.fetchedAt = v, true, false, c.now()
	c.mu.Unlock()

	c.notify(key, v)
	return nil
}

// Invalidate marks keys stale. It is idempotent and order-independent; watched
// keys are refetched in the background.
func (c *Cache) Invalidate(keys ...Key) {
	var refetch []Key
	c.mu.Lock()
	for _, key := range keys {
		e := c.entryLocked(key)
		e.generation++
		e.stale = true
		if len(c.watchers[key]) > 0 && c.queries[key] != nil {
			refetch = append(refetch, key)
		}
	}
	c.mu.Unlock()

	for _, key := range refetch {
		c.refreshAsync(key)
	}
}

// Stale reports whether key must be fetched on its next read.
func (c *Cache) Stale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[key]
	if e == nil {
		return true
	}
	var p Policy
	if q := c.queries[key]; q != nil {
		p = q.policy
	}
	return !c.freshLocked(e, p)
}

// Peek returns the cached value of key without fetching.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Watch marks key as observed by an active view. fn receives every value
// stored for key until release is called.
func (c *Cache) Watch(key Key, fn func(any)) (release func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.watchers[key] = append(c.watchers[key], watcher{id: id, fn: fn})
	if len(c.watchers[key]) == 1 {
		c.startPollerLocked(key)
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.unwatch(key, id) })
	}
}

func (c *Cache) unwatch(key Key, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.watchers[key]
	for i, w := range list {
		if w.id == id {
			c.watchers[key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(c.watchers[key]) == 0 {
		delete(c.watchers, key)
		c.stopPollerLocked(key)
	}
}

func (c *Cache) notify(key Key, v any) {
	c.mu.Lock()
	list := append([]watcher(nil), c.watchers[key]...)
	c.mu.Unlock()

	for _, w := range list {
		w.fn(v)
	}
}

// SetPolicy replaces the policy of a defined key, restarting its poller if
// the key is watched.
func (c *Cache) SetPolicy(key Key, p Policy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.queries[key]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownKey, key)
	}
	q.policy = p
	if len(c.watchers[key]) > 0 {
		c.stopPollerLocked(key)
		c.startPollerLocked(key)
	}
	return nil
}

func (c *Cache) startPollerLocked(key Key) {
	q := c.queries[key]
	if q == nil || q.policy.RefetchInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.pollers[key] = cancel
	interval := q.policy.RefetchInterval

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refresh(key)
			}
		}
	}()
}

func (c *Cache) stopPollerLocked(key Key) {
	if cancel, ok := c.pollers[key]; ok {
		cancel()
		delete(c.pollers, key)
	}
}

func (c *Cache) refreshAsync(key Key) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refresh(key)
	}()
}

func (c *Cache) refresh(key Key) {
	c.mu.Lock()
	q := c.queries[key]
	c.mu.Unlock()
	if q == nil || c.ctx.Err() != nil {
		return
	}
	_, err, _ := c.group.Do(string(key), func() (any, error) {
		return c.fetch(c.ctx, key, q)
	})
	if err != nil && c.ctx.Err() == nil {
		c.logger.Warn("background refetch failed", "key", key, "error", err)
	}
}

// Close stops pollers and waits for background refetches to finish.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}
