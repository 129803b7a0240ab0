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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/police-tablet/nui-bridge/pkg/core"
	"github.com/police-tablet/nui-bridge/pkg/plugins/memory"
)

func newTestServer(t *testing.T, fixtures ...*Fixture) (*Server, *httptest.Server) {
	t.Helper()
	table := NewFixtures()
	table.ReplaceAll(fixtures)
	srv := New(0, table, NewSessions(4, testLogger()), testLogger(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.sessions.DestroyAll()
		ts.Close()
	})
	return srv, ts
}

func post(t *testing.T, url, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestOperationDefaultsToEmptyObject(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, body := post(t, ts.URL+"/duty:clockIn", `{}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body != `{}` {
		t.Fatalf("expected {}, got %s", body)
	}

	calls := srv.Calls()
	if len(calls) != 1 || calls[0].Operation != "duty:clockIn" {
		t.Fatalf("expected recorded duty:clockIn, got %+v", calls)
	}
}

func TestOperationServesFixture(t *testing.T) {
	_, ts := newTestServer(t,
		&Fixture{Operation: "tablet:getStats", Status: 200, Body: []byte(`{"onDuty":4}`)},
		&Fixture{Operation: "employees:dismiss", Status: 500, Body: []byte(`{"error":"denied"}`)},
	)

	resp, body := post(t, ts.URL+"/tablet:getStats", `{}`)
	if resp.StatusCode != 200 || body != `{"onDuty":4}` {
		t.Fatalf("unexpected reply %d %s", resp.StatusCode, body)
	}

	resp, _ = post(t, ts.URL+"/employees:dismiss", `{"visaId":"V1"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestOperationRejectsUnknownAndBadRequests(t *testing.T) {
	_, ts := newTestServer(t)

	if resp, _ := post(t, ts.URL+"/tablet:selfDestruct", `{}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown operation, got %d", resp.StatusCode)
	}
	if resp, _ := post(t, ts.URL+"/duty:clockIn", `{not json`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.StatusCode)
	}
	resp, err := http.Get(ts.URL + "/duty:clockIn")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestPushRequiresType(t *testing.T) {
	_, ts := newTestServer(t)

	if resp, _ := post(t, ts.URL+"/_push", `{"data":1}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp, body := post(t, ts.URL+"/_push", `{"type":"tablet:open"}`)
	if resp.StatusCode != http.StatusAccepted || body != `{"delivered":0,"published":0}` {
		t.Fatalf("unexpected push reply %d %s", resp.StatusCode, body)
	}
}

type failingSink struct{}

func (failingSink) Publish(context.Context, []byte) error { return errors.New("broker down") }

func TestPushForwardsToSinks(t *testing.T) {
	srv, ts := newTestServer(t)
	sink := memory.New("broker", 1)
	srv.AddSink(sink)
	srv.AddSink(failingSink{})

	resp, body := post(t, ts.URL+"/_push", `{ "type": "openTablet" }`)
	if resp.StatusCode != http.StatusAccepted || body != `{"delivered":0,"published":1}` {
		t.Fatalf("unexpected push reply %d %s", resp.StatusCode, body)
	}

	got := make(chan []byte, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sink.Open(ctx, func(data []byte) { got <- data })

	select {
	case data := <-got:
		if string(data) != `{ "type": "openTablet" }` {
			t.Fatalf("sink got %s", data)
		}
	case <-time.After(time.Second):
		t.Fatal("sink received nothing")
	}
}

func TestWebSocketReceivesPush(t *testing.T) {
	srv, ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for srv.sessions.ActiveCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := srv.Push([]byte(`{ "type": "tablet:open" }`)); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"type":"tablet:open"}` {
		t.Fatalf("unexpected frame %s", data)
	}
}

func TestSSEReceivesPush(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/events")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %s", ct)
	}

	deadline := time.Now().Add(time.Second)
	for srv.sessions.ActiveCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	srv.Push([]byte("{\n  \"type\": \"tablet:close\"\n}"))

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	if line != "data: {\"type\":\"tablet:close\"}\n" {
		t.Fatalf("unexpected event line %q", line)
	}
}

func TestLongPollLifecycle(t *testing.T) {
	srv, ts := newTestServer(t)
	client := ts.Client()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/poll", nil)
	req.Header.Set(core.PanelIDHeader, "panel-1")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before subscribe, got %d", resp.StatusCode)
	}

	sub, _ := http.NewRequest(http.MethodPost, ts.URL+"/subscribe", nil)
	sub.Header.Set(core.PanelIDHeader, "panel-1")
	resp, err = client.Do(sub)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	srv.Push([]byte(`{"type":"alert:new","id":3}`))

	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != `{"type":"alert:new","id":3}` {
		t.Fatalf("unexpected poll reply %d %s", resp.StatusCode, body)
	}

	unsub, _ := http.NewRequest(http.MethodDelete, ts.URL+"/unsubscribe", nil)
	unsub.Header.Set(core.PanelIDHeader, "panel-1")
	resp, err = client.Do(unsub)
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if srv.sessions.ActiveCount() != 0 {
		t.Fatalf("expected no sessions, got %d", srv.sessions.ActiveCount())
	}
}

func TestCallRecordIsBounded(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.callLimit = 3

	for i := 0; i < 5; i++ {
		post(t, ts.URL+"/duty:clockIn", fmt.Sprintf(`{"n":%d}`, i))
	}

	calls := srv.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", len(calls))
	}
	if string(calls[0].Body) != `{"n":2}` || string(calls[2].Body) != `{"n":4}` {
		t.Fatalf("expected the newest calls, got %s .. %s", calls[0].Body, calls[2].Body)
	}
}

func TestCallsReset(t *testing.T) {
	srv, ts := newTestServer(t)
	post(t, ts.URL+"/duty:clockIn", `{}`)

	resp, err := http.Get(ts.URL + "/_calls?reset=1")
	if err != nil {
		t.Fatalf("get calls: %v", err)
	}
	var calls []Call
	if err := json.NewDecoder(resp.Body).Decode(&calls); err != nil {
		t.Fatalf("decode calls: %v", err)
	}
	resp.Body.Close()

	if len(calls) != 1 || calls[0].Operation != "duty:clockIn" {
		t.Fatalf("expected the recorded call before reset, got %+v", calls)
	}
	if n := len(srv.Calls()); n != 0 {
		t.Fatalf("expected empty record after reset, got %d", n)
	}
}
