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

// Package catalog is the closed set of host operations the panel may invoke,
// each with a fixed wire name and typed request and response shapes.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// OpName is a wire-stable operation name such as "duty:clockIn".
type OpName string

// Area is the domain prefix of an operation name.
func (n OpName) Area() string {
	area, _, _ := strings.Cut(string(n), ":")
	return area
}

// Caller performs the raw exchange. transport.Transport satisfies it.
type Caller interface {
	Call(ctx context.Context, op string, payload any) (json.RawMessage, error)
}

type Descriptor struct {
	Name     OpName
	Area     string
	Mutating bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[OpName]Descriptor)
)

func register(name OpName, mutating bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("catalog: duplicate operation %q", name))
	}
	registry[name] = Descriptor{Name: name, Area: name.Area(), Mutating: mutating}
}

// Descriptors lists every operation in name order.
func Descriptors() []Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup resolves a name received at a runtime boundary, such as a developer
// shell, to its descriptor.
func Lookup(name string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[OpName(name)]
	return d, ok
}

// Operation binds a wire name to its request and response shapes.
type Operation[Req, Resp any] struct {
	name     OpName
	mutating bool
}

func query[Req, Resp any](name OpName) Operation[Req, Resp] {
	register(name, false)
	return Operation[Req, Resp]{name: name}
}

func mutation[Req, Resp any](name OpName) Operation[Req, Resp] {
	register(name, true)
	return Operation[Req, Resp]{name: name, mutating: true}
}

func (o Operation[Req, Resp]) Name() OpName   { return o.name }
func (o Operation[Req, Resp]) Mutating() bool { return o.mutating }

func (o Operation[Req, Resp]) Call(ctx context.Context, c Caller, req Req) (Resp, error) {
	var resp Resp
	raw, err := c.Call(ctx, string(o.name), req)
	if err != nil {
		return resp, err
	}
	if err := Decode(raw, &resp); err != nil {
		return resp, fmt.Errorf("decode %s response: %w", o.name, err)
	}
	return resp, nil
}

// Decode unmarshals a host reply. An empty body, null, or the empty object
// answered without a host leave v at its zero value whatever its shape.
func Decode(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	err := json.Unmarshal(trimmed, v)
	if err != nil && bytes.Equal(trimmed, []byte("{}")) {
		return nil
	}
	return err
}
