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

package main

import (
	"log/slog"
	"sync"

	"github.com/police-tablet/nui-bridge/internal/datasync"
)

// viewWatch keeps every cache key watched while the panel is on screen, so
// polled keys refresh and invalidated keys refetch only while someone looks.
type viewWatch struct {
	cache  *datasync.Cache
	keys   []datasync.Key
	logger *slog.Logger

	mu       sync.Mutex
	releases []func()
}

func newViewWatch(cache *datasync.Cache, keys []datasync.Key, logger *slog.Logger) *viewWatch {
	return &viewWatch{cache: cache, keys: keys, logger: logger}
}

// toggle is registered as a visibility listener.
func (w *viewWatch) toggle(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !visible {
		for _, release := range w.releases {
			release()
		}
		w.releases = nil
		return
	}
	if w.releases != nil {
		return
	}
	for _, key := range w.keys {
		key := key
		w.releases = append(w.releases, w.cache.Watch(key, func(any) {
			w.logger.Debug("view data refreshed", "key", key)
		}))
	}
}

func (w *viewWatch) watching() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.releases)
}
