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
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade failed", "error", err)
		return
	}

	panelID := core.GeneratePanelID(r)
	sess, err := s.sessions.CreateSession(s.baseCtx, "websocket", panelID)
	if err != nil {
		s.logger.Error("session creation failed", "panel_id", panelID, "error", err)
		conn.Close()
		return
	}

	defer func() {
		conn.Close()
		s.sessions.DestroySession(sess.ID)
	}()

	go s.writeLoop(conn, sess)
	s.readLoop(conn, sess)
}

func (s *Server) writeLoop(conn *websocket.Conn, sess *core.Session) {
	for {
		select {
		case <-sess.Done:
			return
		case data := <-sess.Downstream:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Error("ws write failed", "panel_id", sess.PanelID, "error", err)
				return
			}
		}
	}
}

// readLoop only watches for the panel going away; panels never send frames.
func (s *Server) readLoop(conn *websocket.Conn, sess *core.Session) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error("ws read error", "panel_id", sess.PanelID, "error", err)
			}
			return
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	panelID := core.GeneratePanelID(r)
	sess, err := s.sessions.CreateSession(r.Context(), "sse", panelID)
	if err != nil {
		s.logger.Error("sse session creation failed", "error", err)
		return
	}
	defer s.sessions.DestroySession(sess.ID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.Done:
			return
		case data := <-sess.Downstream:
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	panelID := r.Header.Get(core.PanelIDHeader)
	if panelID == "" {
		http.Error(w, core.PanelIDHeader+" header required", http.StatusBadRequest)
		return
	}

	if prev, ok := s.polls.LoadAndDelete(panelID); ok {
		s.sessions.DestroySession(prev.(*core.Session).ID)
	}

	sess, err := s.sessions.CreateSession(s.baseCtx, "http_poll", panelID)
	if err != nil {
		s.logger.Error("http_poll subscribe failed", "error", err)
		http.Error(w, "subscription failed", http.StatusInternalServerError)
		return
	}

	s.polls.Store(panelID, sess)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `{"session_id":"%s","panel_id":"%s"}`, sess.ID, panelID)
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}

	val, ok := s.polls.Load(r.Header.Get(core.PanelIDHeader))
	if !ok {
		http.Error(w, "not subscribed, call /subscribe first", http.StatusNotFound)
		return
	}
	sess := val.(*core.Session)

	ctx, cancel := context.WithTimeout(r.Context(), pollTimeout)
	defer cancel()

	select {
	case data := <-sess.Downstream:
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	case <-sess.Done:
		http.Error(w, "session closed", http.StatusGone)
	case <-ctx.Done():
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "DELETE required", http.StatusMethodNotAllowed)
		return
	}

	val, ok := s.polls.LoadAndDelete(r.Header.Get(core.PanelIDHeader))
	if !ok {
		http.Error(w, "not subscribed", http.StatusNotFound)
		return
	}

	s.sessions.DestroySession(val.(*core.Session).ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"unsubscribed"}`))
}
