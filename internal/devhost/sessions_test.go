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
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCreateSession(t *testing.T) {
	mgr := NewSessions(5, testLogger())

	sess, err := mgr.CreateSession(context.Background(), "websocket", "panel-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.PanelID != "panel-1" {
		t.Fatalf("expected panel-1, got %s", sess.PanelID)
	}
	if cap(sess.Downstream) != 5 {
		t.Fatalf("expected buffer 5, got %d", cap(sess.Downstream))
	}
	if mgr.ActiveCount() != 1 {
		t.Fatalf("expected 1 active session, got %d", mgr.ActiveCount())
	}

	if err := mgr.DestroySession(sess.ID); err != nil {
		t.Fatalf("unexpected destroy error: %v", err)
	}
	select {
	case <-sess.Done:
	default:
		t.Fatal("expected session to be done after destroy")
	}
	if mgr.ActiveCount() != 0 {
		t.Fatalf("expected 0 active sessions after destroy, got %d", mgr.ActiveCount())
	}
}

func TestDestroyNonexistentSession(t *testing.T) {
	err := NewSessions(1, testLogger()).DestroySession("nonexistent")
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDestroyAll(t *testing.T) {
	mgr := NewSessions(1, testLogger())
	for i := 0; i < 5; i++ {
		_, _ = mgr.CreateSession(context.Background(), "sse", "panel")
	}

	mgr.DestroyAll()
	if mgr.ActiveCount() != 0 {
		t.Fatalf("expected 0 sessions, got %d", mgr.ActiveCount())
	}
}

func TestSessionByPanelID(t *testing.T) {
	mgr := NewSessions(1, testLogger())
	want, _ := mgr.CreateSession(context.Background(), "http_poll", "panel-7")

	got, ok := mgr.SessionByPanelID("panel-7")
	if !ok || got.ID != want.ID {
		t.Fatalf("expected session %s, got %v", want.ID, got)
	}
	if _, ok := mgr.SessionByPanelID("panel-8"); ok {
		t.Fatal("expected no session for unknown panel")
	}
}

func TestBroadcastSkipsFullBuffers(t *testing.T) {
	mgr := NewSessions(1, testLogger())
	a, _ := mgr.CreateSession(context.Background(), "websocket", "a")
	b, _ := mgr.CreateSession(context.Background(), "websocket", "b")
	b.Downstream <- []byte(`{"type":"filler"}`)

	if n := mgr.Broadcast([]byte(`{"type":"tablet:open"}`)); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}
	if got := string(<-a.Downstream); got != `{"type":"tablet:open"}` {
		t.Fatalf("unexpected message %s", got)
	}
}
