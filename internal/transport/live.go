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
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

const DefaultMaxResponseBytes = 1 << 20

// ChannelSource names the host resource calls are addressed to.
// *environment.Detector satisfies it.
type ChannelSource interface {
	ChannelID() string
}

type Option func(*Live)

// WithOrigin sends every call to origin instead of https://<channel>.
func WithOrigin(origin string) Option {
	return func(l *Live) { l.origin = strings.TrimRight(origin, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(l *Live) { l.client = c }
}

func WithMaxResponseBytes(n int64) Option {
	return func(l *Live) {
		if n > 0 {
			l.maxBody = n
		}
	}
}

func WithCallLogger(p *logging.CallLogger) Option {
	return func(l *Live) { l.callLog = p }
}

// Live posts each operation to the host as JSON. It keeps no retry state and
// enforces no timeout of its own.
type Live struct {
	channel ChannelSource
	origin  string
	client  *http.Client
	logger  *slog.Logger
	callLog *logging.CallLogger
	maxBody int64
	pending sync.Map
}

func NewLive(channel ChannelSource, logger *slog.Logger, opts ...Option) *Live {
	l := &Live{
		channel: channel,
		client:  http.DefaultClient,
		logger:  logger,
		maxBody: DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	return l
}

// Pending reports the number of calls still awaiting a reply.
func (l *Live) Pending() int {
	n := 0
	l.pending.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (l *Live) endpoint(op string) string {
	if l.origin != "" {
		return l.origin + "/" + op
	}
	return "https://" + l.channel.ChannelID() + "/" + op
}

type result struct {
	data json.RawMessage
	err  error
}

// Call sends op and waits for its reply. Cancelling ctx only stops the wait:
// the exchange itself always runs to settlement.
func (l *Live) Call(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	done := make(chan result, 1)
	go func() {
		data, err := l.exchange(context.WithoutCancel(ctx), op, payload)
		done <- result{data, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = &CallError{Op: op, Message: "caller stopped waiting", Err: ctx.Err()}
	}
	if res.err != nil {
		l.logger.Error("NUI callback failed", "operation", op, "status", StatusOf(res.err), "error", res.err)
		return nil, res.err
	}
	return res.data, nil
}

func (l *Live) exchange(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, &CallError{Op: op, Message: "encode payload", Err: err}
	}

	id := uuid.New().String()
	start := time.Now()
	l.pending.Store(id, op)
	defer l.pending.Delete(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint(op), bytes.NewReader(body))
	if err != nil {
		return nil, &CallError{Op: op, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBody))
	l.callLog.Log(core.Record{
		CorrelationID: id,
		Operation:     op,
		Direction:     core.DirectionOutbound,
		PayloadSize:   len(body),
		Status:        resp.StatusCode,
		Duration:      time.Since(start),
		Timestamp:     start.UTC(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CallError{Op: op, Status: resp.StatusCode, Message: statusText(resp)}
	}
	if err != nil {
		return nil, &CallError{Op: op, Status: resp.StatusCode, Message: "read response", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return append(json.RawMessage(nil), emptyObject...), nil
	}
	if !json.Valid(data) {
		return nil, &CallError{Op: op, Status: resp.StatusCode, Message: "malformed response", Err: fmt.Errorf("invalid json body")}
	}
	return json.RawMessage(data), nil
}

func encodePayload(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case nil:
		return []byte(`{}`), nil
	case json.RawMessage:
		if len(p) == 0 {
			return []byte(`{}`), nil
		}
		return p, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte(`{}`), nil
	}
	return b, nil
}

func statusText(resp *http.Response) string {
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return resp.Status
}
