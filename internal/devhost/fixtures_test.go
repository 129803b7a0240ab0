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
	"sync"
	"testing"
)

func TestFixturesAddAndLookup(t *testing.T) {
	fixtures := NewFixtures()
	fixtures.Add(&Fixture{Operation: "tablet:getStats", Status: 200, Body: []byte(`{"onDuty":3}`)})

	got, ok := fixtures.Lookup("tablet:getStats")
	if !ok {
		t.Fatal("expected fixture to be found")
	}
	if string(got.Body) != `{"onDuty":3}` {
		t.Fatalf("unexpected body %s", got.Body)
	}
}

func TestFixturesLookupMiss(t *testing.T) {
	if _, ok := NewFixtures().Lookup("nonexistent"); ok {
		t.Fatal("expected fixture not to be found")
	}
}

func TestFixturesRemove(t *testing.T) {
	fixtures := NewFixtures()
	fixtures.Add(&Fixture{Operation: "duty:clockIn"})
	fixtures.Remove("duty:clockIn")

	if _, ok := fixtures.Lookup("duty:clockIn"); ok {
		t.Fatal("expected fixture to be removed")
	}
}

func TestFixturesReplaceAll(t *testing.T) {
	fixtures := NewFixtures()
	fixtures.Add(&Fixture{Operation: "old"})

	fixtures.ReplaceAll([]*Fixture{{Operation: "a"}, {Operation: "b"}})

	if _, ok := fixtures.Lookup("old"); ok {
		t.Fatal("expected old fixture to be removed")
	}
	if fixtures.Len() != 2 {
		t.Fatalf("expected 2 fixtures, got %d", fixtures.Len())
	}
}

func TestFixturesConcurrentAccess(t *testing.T) {
	fixtures := NewFixtures()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fixtures.Add(&Fixture{Operation: "op", Status: 200 + n})
			fixtures.Lookup("op")
		}(i)
	}
	wg.Wait()
}
