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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/police-tablet/nui-bridge/internal/datasync"
	"github.com/police-tablet/nui-bridge/internal/devhost"
	"github.com/police-tablet/nui-bridge/internal/environment"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "NUI_BRIDGE_"

const (
	ModeAuto = "auto"
	ModeLive = "live"
	ModeStub = "stub"
)

type Config struct {
	Bridge  BridgeConfig  `yaml:"bridge" envPrefix:"BRIDGE_"`
	Surface SurfaceConfig `yaml:"surface" envPrefix:"SURFACE_"`
	Cache   CacheConfig   `yaml:"cache"`
	DevHost DevHostConfig `yaml:"devhost" envPrefix:"DEVHOST_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

type BridgeConfig struct {
	Mode             string `yaml:"mode" env:"MODE"`
	HostProbeEnv     string `yaml:"host_probe_env" env:"HOST_PROBE_ENV"`
	FallbackChannel  string `yaml:"fallback_channel" env:"FALLBACK_CHANNEL"`
	Origin           string `yaml:"origin" env:"ORIGIN"`
	MaxResponseBytes int64  `yaml:"max_response_bytes" env:"MAX_RESPONSE_BYTES"`
}

// SurfaceConfig selects the inbound push surface. Keys in Config depend on Type.
type SurfaceConfig struct {
	Name   string            `yaml:"name" env:"NAME"`
	Type   string            `yaml:"type" env:"TYPE"`
	Config map[string]string `yaml:"config" env:"CONFIG"`
}

type CacheConfig struct {
	Policies map[string]PolicyConfig `yaml:"policies"`
}

type PolicyConfig struct {
	StaleTime       time.Duration `yaml:"stale_time"`
	RefetchInterval time.Duration `yaml:"refetch_interval"`
}

type DevHostConfig struct {
	Port     int             `yaml:"port" env:"PORT"`
	Fixtures []FixtureConfig `yaml:"fixtures"`
}

type FixtureConfig struct {
	Operation string        `yaml:"operation"`
	Status    int           `yaml:"status"`
	Body      any           `yaml:"body"`
	Delay     time.Duration `yaml:"delay"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

func Default() *Config {
	return &Config{
		Bridge: BridgeConfig{
			Mode:             ModeAuto,
			HostProbeEnv:     environment.DefaultProbeEnv,
			FallbackChannel:  environment.DefaultFallbackChannel,
			MaxResponseBytes: 1 << 20,
		},
		Surface: SurfaceConfig{Name: "host"},
		DevHost: DevHostConfig{Port: 3000},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Bridge.Mode {
	case ModeAuto, ModeLive, ModeStub:
	default:
		return fmt.Errorf("%w: bridge.mode %q", core.ErrInvalidConfig, c.Bridge.Mode)
	}
	if c.Bridge.MaxResponseBytes <= 0 {
		return fmt.Errorf("%w: bridge.max_response_bytes must be positive", core.ErrInvalidConfig)
	}
	if _, err := c.Cache.ToPolicies(); err != nil {
		return err
	}
	if _, err := c.DevHost.ToFixtures(); err != nil {
		return err
	}
	return nil
}

// ToPolicies resolves configured policies against the known cache keys.
func (cc CacheConfig) ToPolicies() (map[datasync.Key]datasync.Policy, error) {
	known := make(map[string]bool)
	for _, k := range datasync.Keys() {
		known[string(k)] = true
	}

	out := make(map[datasync.Key]datasync.Policy, len(cc.Policies))
	for name, p := range cc.Policies {
		if !known[name] {
			return nil, fmt.Errorf("%w: cache.policies: %w: %s", core.ErrInvalidConfig, core.ErrUnknownKey, name)
		}
		if p.StaleTime < 0 || p.RefetchInterval < 0 {
			return nil, fmt.Errorf("%w: cache.policies.%s: negative duration", core.ErrInvalidConfig, name)
		}
		out[datasync.Key(name)] = datasync.Policy{StaleTime: p.StaleTime, RefetchInterval: p.RefetchInterval}
	}
	return out, nil
}

func (dc DevHostConfig) ToFixtures() ([]*devhost.Fixture, error) {
	out := make([]*devhost.Fixture, 0, len(dc.Fixtures))
	for _, fc := range dc.Fixtures {
		f, err := fc.ToFixture()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (fc FixtureConfig) ToFixture() (*devhost.Fixture, error) {
	if fc.Operation == "" {
		return nil, fmt.Errorf("%w: fixture without operation", core.ErrInvalidConfig)
	}
	status := fc.Status
	if status == 0 {
		status = 200
	}
	body := []byte(`{}`)
	if fc.Body != nil {
		b, err := json.Marshal(fc.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: fixture %s body: %v", core.ErrInvalidConfig, fc.Operation, err)
		}
		body = b
	}
	return &devhost.Fixture{
		Operation: fc.Operation,
		Status:    status,
		Body:      body,
		Delay:     fc.Delay,
	}, nil
}
