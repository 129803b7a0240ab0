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

// Package transport sends named operations to the host and returns its reply.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

// Transport performs one request/response exchange with the host.
type Transport interface {
	Call(ctx context.Context, op string, payload any) (json.RawMessage, error)
}

// CallError reports a failed call: either the host answered with a non-success
// status or the exchange never completed.
type CallError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *CallError) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = strings.TrimSpace(fmt.Sprintf("%d %s", e.Status, msg))
	}
	switch {
	case e.Err != nil && msg != "":
		return fmt.Sprintf("NUI callback %s failed: %s: %v", e.Op, msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("NUI callback %s failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("NUI callback %s failed: %s", e.Op, msg)
	}
}

func (e *CallError) Unwrap() []error {
	if e.Err != nil {
		return []error{core.ErrTransport, e.Err}
	}
	return []error{core.ErrTransport}
}

// StatusOf returns the host status carried by err, or 0.
func StatusOf(err error) int {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}

var emptyObject = json.RawMessage(`{}`)

// Stub answers every operation with an empty object without touching the network.
type Stub struct {
	logger *slog.Logger
}

func NewStub(logger *slog.Logger) *Stub {
	return &Stub{logger: logger}
}

func (s *Stub) Call(_ context.Context, op string, _ any) (json.RawMessage, error) {
	if s.logger != nil {
		s.logger.Info("[DEV MODE] NUI callback", "operation", op)
	}
	return append(json.RawMessage(nil), emptyObject...), nil
}

// Attachment reports whether a live host is present. *environment.Detector
// satisfies it.
type Attachment interface {
	IsHostAttached() bool
}

// Auto picks Live or Stub on every call, following the host attachment.
type Auto struct {
	env  Attachment
	live Transport
	stub Transport
}

func NewAuto(env Attachment, live, stub Transport) *Auto {
	return &Auto{env: env, live: live, stub: stub}
}

func (a *Auto) Call(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	if a.env.IsHostAttached() {
		return a.live.Call(ctx, op, payload)
	}
	return a.stub.Call(ctx, op, payload)
}
