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

// Package memory is an in-process push surface for tests and embedded hosts.
package memory

import (
	"context"
	"sync"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name string
	ch   chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func New(name string, buffer int) *Surface {
	return &Surface{
		name: name,
		ch:   make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "memory" }

// Push queues one message for delivery. It blocks while the buffer is full.
func (s *Surface) Push(ctx context.Context, data []byte) error {
	select {
	case <-s.done:
		return core.ErrSurfaceClosed
	default:
	}
	select {
	case s.ch <- data:
		return nil
	case <-s.done:
		return core.ErrSurfaceClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish is Push, so the surface can stand in for a broker.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	return s.Push(ctx, data)
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case data := <-s.ch:
			deliver(data)
		}
	}
}

func (s *Surface) Close(_ context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
