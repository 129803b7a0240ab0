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

// Package ws receives host pushes as websocket text frames.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name    string
	url     string
	panelID string
	dialer  *websocket.Dialer
	logger  *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func New(name, url, panelID string, logger *slog.Logger) *Surface {
	return &Surface{
		name:    name,
		url:     url,
		panelID: panelID,
		dialer:  websocket.DefaultDialer,
		logger:  logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "websocket" }

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	header := http.Header{}
	if s.panelID != "" {
		header.Set(core.PanelIDHeader, s.panelID)
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	s.logger.Info("websocket surface connected", "name", s.name, "url", s.url)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return core.ErrSurfaceClosed
			}
			return fmt.Errorf("websocket read: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		deliver(data)
	}
}

func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
