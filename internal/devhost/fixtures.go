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

// Package devhost is a local stand-in for the game client: it answers panel
// operations from fixtures and pushes host events to connected panels.
package devhost

import (
	"sync"
	"time"
)

// Fixture is the canned reply to one operation.
type Fixture struct {
	Operation string
	Status    int
	Body      []byte
	Delay     time.Duration
}

type Fixtures struct {
	fixtures sync.Map
}

func NewFixtures() *Fixtures {
	return &Fixtures{}
}

func (t *Fixtures) Add(f *Fixture) {
	t.fixtures.Store(f.Operation, f)
}

func (t *Fixtures) Remove(op string) {
	t.fixtures.Delete(op)
}

func (t *Fixtures) Lookup(op string) (*Fixture, bool) {
	v, ok := t.fixtures.Load(op)
	if !ok {
		return nil, false
	}
	return v.(*Fixture), true
}

func (t *Fixtures) ReplaceAll(fixtures []*Fixture) {
	t.fixtures.Range(func(key, _ any) bool {
		t.fixtures.Delete(key)
		return true
	})
	for _, f := range fixtures {
		t.fixtures.Store(f.Operation, f)
	}
}

func (t *Fixtures) Len() int {
	n := 0
	t.fixtures.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
