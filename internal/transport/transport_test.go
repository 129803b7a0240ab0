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

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/police-tablet/nui-bridge/internal/environment"
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

type recordedCall struct {
	path        string
	contentType string
	body        string
}

func newHost(t *testing.T, status int, reply string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	var mu sync.Mutex
	calls := &[]recordedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		*calls = append(*calls, recordedCall{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: string(body)})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestStubReturnsEmptyObject(t *testing.T) {
	resp, err := NewStub(logging.Discard()).Call(context.Background(), "duty:clockIn", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp))
}

func TestLivePostsToOperationPath(t *testing.T) {
	srv, calls := newHost(t, http.StatusOK, `{"success":true}`)
	live := NewLive(environment.NewDetector(environment.StaticProbe("police-tablet"), ""), nil, WithOrigin(srv.URL))

	payload := map[string]string{"visaId": "V-7", "reason": "misconduct"}
	resp, err := live.Call(context.Background(), "employees:dismiss", payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(resp))

	require.Len(t, *calls, 1)
	assert.Equal(t, "/employees:dismiss", (*calls)[0].path)
	assert.Contains(t, (*calls)[0].contentType, "application/json")
	assert.JSONEq(t, `{"visaId":"V-7","reason":"misconduct"}`, (*calls)[0].body)
}

func TestLiveDefaultsBodyToEmptyObject(t *testing.T) {
	srv, calls := newHost(t, http.StatusOK, `[]`)
	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	_, err := live.Call(context.Background(), "positions:get", nil)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, `{}`, (*calls)[0].body)
}

func TestLiveEmptyReplyIsEmptyObject(t *testing.T) {
	srv, _ := newHost(t, http.StatusOK, "")
	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	resp, err := live.Call(context.Background(), "tablet:close", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp))
}

func TestLiveNonSuccessStatus(t *testing.T) {
	srv, _ := newHost(t, http.StatusInternalServerError, `oops`)
	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	_, err := live.Call(context.Background(), "duty:clockIn", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTransport))

	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "duty:clockIn", ce.Op)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
	assert.Equal(t, "Internal Server Error", ce.Message)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestLiveNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(origin))
	_, err := live.Call(context.Background(), "stats:get", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTransport))
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, 0, live.Pending())
}

func TestLiveMalformedReply(t *testing.T) {
	srv, _ := newHost(t, http.StatusOK, `{not json`)
	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	_, err := live.Call(context.Background(), "stats:get", nil)
	assert.True(t, errors.Is(err, core.ErrTransport))
}

func TestLiveAddressesChannel(t *testing.T) {
	var gotHost atomic.Value
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotHost.Store(r.URL.Scheme + "://" + r.URL.Host + r.URL.Path)
		return &http.Response{StatusCode: 200, Body: io.NopCloser(jsonReader(`{}`)), Header: http.Header{}}, nil
	})}
	live := NewLive(environment.NewDetector(environment.StaticProbe("vrp_tablet"), ""), nil, WithHTTPClient(client))

	_, err := live.Call(context.Background(), "player:getData", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://vrp_tablet/player:getData", gotHost.Load())
}

func TestLivePendingTracksInFlightCalls(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			live.Call(context.Background(), "stats:get", nil)
		}()
	}

	require.Eventually(t, func() bool { return live.Pending() == 3 }, 2*time.Second, 10*time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, 0, live.Pending())
}

func TestAutoFollowsAttachment(t *testing.T) {
	srv, calls := newHost(t, http.StatusOK, `{"live":true}`)
	attached := false
	det := environment.NewDetector(func() (string, bool) { return "res", attached }, "")
	auto := NewAuto(det, NewLive(det, nil, WithOrigin(srv.URL)), NewStub(nil))

	resp, err := auto.Call(context.Background(), "stats:get", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resp))
	assert.Empty(t, *calls)

	attached = true
	resp, err = auto.Call(context.Background(), "stats:get", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"live":true}`, string(resp))
	assert.Len(t, *calls, 1)
}

func TestEncodePayload(t *testing.T) {
	b, err := encodePayload(json.RawMessage(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	var nilMap map[string]any
	b, err = encodePayload(nilMap)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	b, err = encodePayload(struct {
		Filter string `json:"filter"`
	}{"duty"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":"duty"}`, string(b))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonReader(s string) io.Reader { return strings.NewReader(s) }

func TestLiveCancelStopsWaitingOnly(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	settled := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(`{}`))
		settled <- r.Context().Err()
	}))
	defer srv.Close()

	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), nil, WithOrigin(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := live.Call(ctx, "occurrences:getAll", nil)
		errCh <- err
	}()

	<-entered
	cancel()

	err := <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, core.ErrTransport)
	assert.Equal(t, 1, live.Pending(), "exchange still running after the caller left")

	close(release)
	select {
	case reqErr := <-settled:
		assert.NoError(t, reqErr, "host request must not be aborted")
	case <-time.After(2 * time.Second):
		t.Fatal("host never settled the request")
	}
	require.Eventually(t, func() bool { return live.Pending() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestLiveLogsEveryRejection(t *testing.T) {
	srv, _ := newHost(t, http.StatusOK, `{not json`)

	var buf syncBuffer
	live := NewLive(environment.NewDetector(environment.StaticProbe("x"), ""), logging.New(&buf, "info"), WithOrigin(srv.URL))

	_, err := live.Call(context.Background(), "stats:get", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")

	_, err = live.Call(context.Background(), "radio:broadcast", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode payload")

	out := buf.String()
	assert.Contains(t, out, `"operation":"stats:get"`)
	assert.Contains(t, out, `"operation":"radio:broadcast"`)
	assert.Equal(t, 2, strings.Count(out, "NUI callback failed"))
}

func TestCallErrorText(t *testing.T) {
	boom := errors.New("boom")
	assert.Equal(t, "NUI callback a failed: 500 Internal Server Error",
		(&CallError{Op: "a", Status: 500, Message: "Internal Server Error"}).Error())
	assert.Equal(t, "NUI callback a failed: encode payload: boom",
		(&CallError{Op: "a", Message: "encode payload", Err: boom}).Error())
	assert.Equal(t, "NUI callback a failed: 200 malformed response: boom",
		(&CallError{Op: "a", Status: 200, Message: "malformed response", Err: boom}).Error())
	assert.Equal(t, "NUI callback a failed: boom",
		(&CallError{Op: "a", Err: boom}).Error())
}

type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
