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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

func TestCallLoggerOmitsPayload(t *testing.T) {
	var buf bytes.Buffer
	log := NewCallLogger(New(&buf, "info"))

	log.Log(core.Record{
		CorrelationID: "c-1",
		Operation:     "employees:dismiss",
		Direction:     core.DirectionOutbound,
		PayloadSize:   42,
		Status:        200,
		Duration:      15 * time.Millisecond,
		Timestamp:     time.Now().UTC(),
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if line["operation"] != "employees:dismiss" {
		t.Fatalf("expected operation employees:dismiss, got %v", line["operation"])
	}
	if line["direction"] != "outbound" {
		t.Fatalf("expected outbound direction, got %v", line["direction"])
	}
	if line["payload_size"] != float64(42) {
		t.Fatalf("expected payload_size 42, got %v", line["payload_size"])
	}
	if strings.Contains(buf.String(), "payload\"") {
		t.Fatalf("payload contents must not be logged: %s", buf.String())
	}
}

func TestNilCallLogger(t *testing.T) {
	var log *CallLogger
	log.Log(core.Record{Operation: "tablet:close"})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
