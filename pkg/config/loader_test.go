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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/police-tablet/nui-bridge/internal/datasync"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
bridge:
  mode: live
  origin: http://localhost:3000
surface:
  name: devhost
  type: websocket
  config:
    url: ws://localhost:3000/ws
cache:
  policies:
    stats:
      refetch_interval: 15s
    playerData:
      stale_time: 2m
devhost:
  port: 8066
  fixtures:
    - operation: tablet:getPlayerData
      body:
        id: 1
        name: Doe
    - operation: duty:clockIn
      status: 500
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bridge.Mode != ModeLive {
		t.Fatalf("expected live mode, got %s", cfg.Bridge.Mode)
	}
	if cfg.Bridge.FallbackChannel != "police-tablet" {
		t.Fatalf("expected default fallback channel, got %s", cfg.Bridge.FallbackChannel)
	}
	if cfg.Surface.Type != "websocket" || cfg.Surface.Config["url"] != "ws://localhost:3000/ws" {
		t.Fatalf("unexpected surface config: %+v", cfg.Surface)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level, got %s", cfg.Log.Level)
	}

	policies, err := cfg.Cache.ToPolicies()
	if err != nil {
		t.Fatalf("unexpected policy error: %v", err)
	}
	if policies[datasync.KeyStats].RefetchInterval != 15*time.Second {
		t.Fatalf("expected 15s stats refetch, got %v", policies[datasync.KeyStats].RefetchInterval)
	}
	if policies[datasync.KeyPlayerData].StaleTime != 2*time.Minute {
		t.Fatalf("expected 2m player stale time, got %v", policies[datasync.KeyPlayerData].StaleTime)
	}

	fixtures, err := cfg.DevHost.ToFixtures()
	if err != nil {
		t.Fatalf("unexpected fixture error: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].Status != 200 || string(fixtures[0].Body) != `{"id":1,"name":"Doe"}` {
		t.Fatalf("unexpected first fixture: %d %s", fixtures[0].Status, fixtures[0].Body)
	}
	if fixtures[1].Status != 500 || string(fixtures[1].Body) != `{}` {
		t.Fatalf("unexpected second fixture: %d %s", fixtures[1].Status, fixtures[1].Body)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bridge.Mode != ModeAuto {
		t.Fatalf("expected auto mode, got %s", cfg.Bridge.Mode)
	}
	if cfg.Bridge.MaxResponseBytes != 1<<20 {
		t.Fatalf("expected 1MiB response cap, got %d", cfg.Bridge.MaxResponseBytes)
	}
}

func TestLoadUnreadablePath(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error reading a directory")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "bridge: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
bridge:
  mode: live
surface:
  type: sse
`)
	t.Setenv("NUI_BRIDGE_BRIDGE_MODE", "stub")
	t.Setenv("NUI_BRIDGE_SURFACE_TYPE", "redis")
	t.Setenv("NUI_BRIDGE_SURFACE_CONFIG", "addr:localhost:6379,channel:tablet")
	t.Setenv("NUI_BRIDGE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bridge.Mode != ModeStub {
		t.Fatalf("expected env to force stub mode, got %s", cfg.Bridge.Mode)
	}
	if cfg.Surface.Type != "redis" {
		t.Fatalf("expected redis surface, got %s", cfg.Surface.Type)
	}
	if cfg.Surface.Config["addr"] != "localhost:6379" || cfg.Surface.Config["channel"] != "tablet" {
		t.Fatalf("unexpected surface config: %v", cfg.Surface.Config)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected warn, got %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad mode", "bridge:\n  mode: hybrid\n"},
		{"unknown cache key", "cache:\n  policies:\n    radio:\n      stale_time: 1m\n"},
		{"fixture without operation", "devhost:\n  fixtures:\n    - status: 200\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
