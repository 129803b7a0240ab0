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

package devhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

const defaultBuffer = 16

// Sessions tracks every panel connected to the host, whatever the surface.
type Sessions struct {
	sessions sync.Map
	buffer   int
	logger   *slog.Logger
}

func NewSessions(buffer int, logger *slog.Logger) *Sessions {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Sessions{buffer: buffer, logger: logger}
}

func (m *Sessions) CreateSession(ctx context.Context, surface string, panelID string) (*core.Session, error) {
	sessionCtx, cancel := context.WithCancel(ctx)
	sess := &core.Session{
		ID:         uuid.New().String(),
		PanelID:    panelID,
		Surface:    surface,
		Downstream: make(chan []byte, m.buffer),
		Done:       sessionCtx.Done(),
		Cancel:     cancel,
	}
	m.sessions.Store(sess.ID, sess)

	m.logger.Info("panel connected",
		"session_id", sess.ID,
		"panel_id", panelID,
		"surface", surface,
	)
	return sess, nil
}

func (m *Sessions) DestroySession(sessionID string) error {
	val, ok := m.sessions.LoadAndDelete(sessionID)
	if !ok {
		return fmt.Errorf("%w: id=%s", core.ErrSessionNotFound, sessionID)
	}

	sess := val.(*core.Session)
	sess.Cancel()

	m.logger.Info("panel disconnected",
		"session_id", sessionID,
		"panel_id", sess.PanelID,
	)
	return nil
}

func (m *Sessions) DestroyAll() {
	m.sessions.Range(func(key, _ any) bool {
		_ = m.DestroySession(key.(string))
		return true
	})
}

func (m *Sessions) ActiveCount() int {
	count := 0
	m.sessions.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (m *Sessions) SessionByPanelID(panelID string) (*core.Session, bool) {
	var found *core.Session
	m.sessions.Range(func(_, val any) bool {
		sess := val.(*core.Session)
		if sess.PanelID == panelID {
			found = sess
			return false
		}
		return true
	})
	return found, found != nil
}

// Broadcast queues data for every connected panel and reports how many
// accepted it. Panels whose buffer is full miss the message.
func (m *Sessions) Broadcast(data []byte) int {
	delivered := 0
	m.sessions.Range(func(_, val any) bool {
		sess := val.(*core.Session)
		select {
		case sess.Downstream <- data:
			delivered++
		default:
			m.logger.Warn("panel buffer full, dropping push", "session_id", sess.ID, "panel_id", sess.PanelID)
		}
		return true
	})
	return delivered
}
