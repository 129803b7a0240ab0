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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/catalog"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

const (
	pollTimeout = 30 * time.Second
	// maxCalls bounds the call record; the oldest calls are dropped first.
	maxCalls = 1000
)

// Call is one operation received from a panel.
type Call struct {
	Operation string          `json:"operation"`
	Body      json.RawMessage `json:"body"`
	At        time.Time       `json:"at"`
}

type Server struct {
	port     int
	fixtures *Fixtures
	sessions *Sessions
	upgrader websocket.Upgrader
	server   *http.Server
	logger   *slog.Logger
	callLog  *logging.CallLogger
	maxBody  int64

	baseCtx context.Context
	polls   sync.Map

	mu        sync.Mutex
	calls     []Call
	callLimit int
	sinks     []core.Publisher
}

func New(port int, fixtures *Fixtures, sessions *Sessions, logger *slog.Logger, callLog *logging.CallLogger) *Server {
	return &Server{
		port:     port,
		fixtures: fixtures,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:    logger,
		callLog:   callLog,
		maxBody:   1 << 20,
		baseCtx:   context.Background(),
		callLimit: maxCalls,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/events", s.handleSSE)
	mux.HandleFunc("/subscribe", s.handleSubscribe)
	mux.HandleFunc("/poll", s.handlePoll)
	mux.HandleFunc("/unsubscribe", s.handleUnsubscribe)
	mux.HandleFunc("/_push", s.handlePush)
	mux.HandleFunc("/_calls", s.handleCalls)
	mux.HandleFunc("/", s.handleOperation)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.baseCtx = ctx
	s.server = &http.Server{Addr: fmt.Sprintf(":%d", s.port), Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("development host starting", "port", s.port)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.sessions.DestroyAll()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Calls returns the operations received so far, oldest first.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) record(op string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Operation: op, Body: json.RawMessage(body), At: time.Now().UTC()})
	if over := len(s.calls) - s.callLimit; over > 0 {
		s.calls = append(s.calls[:0:0], s.calls[over:]...)
	}
}

// ResetCalls forgets every recorded call and returns what it dropped.
func (s *Server) ResetCalls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.calls
	s.calls = nil
	return calls
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	op := strings.TrimPrefix(r.URL.Path, "/")
	if _, ok := catalog.Lookup(op); !ok {
		if _, ok := s.fixtures.Lookup(op); !ok {
			http.Error(w, "unknown operation", http.StatusNotFound)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if !json.Valid(body) {
		http.Error(w, "body must be json", http.StatusBadRequest)
		return
	}

	start := time.Now()
	s.record(op, body)

	status, reply := http.StatusOK, []byte(`{}`)
	if f, ok := s.fixtures.Lookup(op); ok {
		status, reply = f.Status, f.Body
		if f.Delay > 0 {
			select {
			case <-time.After(f.Delay):
			case <-r.Context().Done():
				return
			}
		}
	}

	s.callLog.Log(core.Record{
		CorrelationID: uuid.New().String(),
		Operation:     op,
		Direction:     core.DirectionInbound,
		PayloadSize:   len(body),
		Status:        status,
		Duration:      time.Since(start),
		Timestamp:     start.UTC(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(reply)
}

func (s *Server) handleCalls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}
	var calls []Call
	if r.URL.Query().Get("reset") == "1" {
		calls = s.ResetCalls()
	} else {
		calls = s.Calls()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calls)
}

// handlePush broadcasts one host event to every connected panel.
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var msg map[string]json.RawMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		http.Error(w, "push must be a json object", http.StatusBadRequest)
		return
	}
	var event string
	if err := json.Unmarshal(msg[core.TypeField], &event); err != nil || event == "" {
		http.Error(w, "push requires a string type field", http.StatusBadRequest)
		return
	}

	delivered := s.Push(body)
	published := s.publish(r.Context(), body)
	s.logger.Info("push broadcast", "event", event, "delivered", delivered, "published", published)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, `{"delivered":%d,"published":%d}`, delivered, published)
}

// AddSink forwards every pushed message to p as well, for panels that listen
// on a broker rather than on this server.
func (s *Server) AddSink(p core.Publisher) {
	s.mu.Lock()
	s.sinks = append(s.sinks, p)
	s.mu.Unlock()
}

func (s *Server) publish(ctx context.Context, data []byte) int {
	s.mu.Lock()
	sinks := append([]core.Publisher(nil), s.sinks...)
	s.mu.Unlock()

	published := 0
	for _, p := range sinks {
		if err := p.Publish(ctx, data); err != nil {
			s.logger.Error("push sink failed", "error", err)
			continue
		}
		published++
	}
	return published
}

// Push queues a message for every connected panel. JSON is compacted so one
// message always fits one SSE data line.
func (s *Server) Push(data []byte) int {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err == nil {
		data = buf.Bytes()
	}
	return s.sessions.Broadcast(data)
}
