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

package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/police-tablet/nui-bridge/pkg/core"
	"github.com/police-tablet/nui-bridge/pkg/plugins/amqp10"
	"github.com/police-tablet/nui-bridge/pkg/plugins/httppoll"
	"github.com/police-tablet/nui-bridge/pkg/plugins/kafka"
	"github.com/police-tablet/nui-bridge/pkg/plugins/memory"
	"github.com/police-tablet/nui-bridge/pkg/plugins/mqtt5"
	"github.com/police-tablet/nui-bridge/pkg/plugins/rabbitmq"
	"github.com/police-tablet/nui-bridge/pkg/plugins/redis"
	"github.com/police-tablet/nui-bridge/pkg/plugins/solace"
	"github.com/police-tablet/nui-bridge/pkg/plugins/sse"
	"github.com/police-tablet/nui-bridge/pkg/plugins/ws"
)

// Factory builds a surface from its settings.
type Factory func(name string, settings Settings, env Env) (core.Surface, error)

// Env carries what every factory may need beyond its own settings.
type Env struct {
	PanelID    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Settings is the free-form per-surface configuration.
type Settings map[string]string

func (s Settings) require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(s[k]) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing surface setting(s) %s", core.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

func (s Settings) intOr(key string, def int) (int, error) {
	v := strings.TrimSpace(s[key])
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: surface setting %s: %v", core.ErrInvalidConfig, key, err)
	}
	return n, nil
}

type Registry struct {
	factories map[string]Factory
	surfaces  map[string]core.Surface
	logger    *slog.Logger
	mu        sync.RWMutex
}

// NewRegistry returns a registry that knows every built-in surface type.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		surfaces:  make(map[string]core.Surface),
		logger:    logger,
	}
	r.RegisterFactory("websocket", newWebSocket)
	r.RegisterFactory("sse", newSSE)
	r.RegisterFactory("http_poll", newHTTPPoll)
	r.RegisterFactory("rabbitmq", newRabbitMQ)
	r.RegisterFactory("kafka", newKafka)
	r.RegisterFactory("mqtt5", newMQTT5)
	r.RegisterFactory("amqp10", newAMQP10)
	r.RegisterFactory("redis", newRedis)
	r.RegisterFactory("solace", newSolace)
	r.RegisterFactory("memory", newMemory)
	return r
}

func (r *Registry) RegisterFactory(typ string, f Factory) {
	r.mu.Lock()
	r.factories[typ] = f
	r.mu.Unlock()
}

// Types lists the registered surface types in order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Build creates and registers the surface named name of type typ.
func (r *Registry) Build(name, typ string, settings Settings, env Env) (core.Surface, error) {
	r.mu.RLock()
	f, ok := r.factories[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSurface, typ)
	}
	if env.Logger == nil {
		env.Logger = r.logger
	}

	s, err := f(name, settings, env)
	if err != nil {
		return nil, fmt.Errorf("surface %s: %w", name, err)
	}

	r.mu.Lock()
	r.surfaces[name] = s
	r.mu.Unlock()
	r.logger.Info("registered surface", "name", s.Name(), "type", s.Type())
	return s, nil
}

func (r *Registry) Surface(name string) (core.Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[name]
	return s, ok
}

func (r *Registry) Surfaces() map[string]core.Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]core.Surface, len(r.surfaces))
	for k, v := range r.surfaces {
		cp[k] = v
	}
	return cp
}

func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	surfaces := r.surfaces
	r.surfaces = make(map[string]core.Surface)
	r.mu.Unlock()

	for name, s := range surfaces {
		r.logger.Info("closing surface", "name", name)
		if err := s.Close(ctx); err != nil {
			r.logger.Warn("surface close failed", "name", name, "error", err)
		}
	}
}

func newWebSocket(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url"); err != nil {
		return nil, err
	}
	return ws.New(name, s["url"], env.PanelID, env.Logger), nil
}

func newSSE(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url"); err != nil {
		return nil, err
	}
	return sse.New(name, s["url"], env.PanelID, env.HTTPClient, env.Logger), nil
}

func newHTTPPoll(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url"); err != nil {
		return nil, err
	}
	return httppoll.New(name, s["url"], env.PanelID, env.HTTPClient, env.Logger), nil
}

func newRabbitMQ(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url", "queue"); err != nil {
		return nil, err
	}
	return rabbitmq.New(name, s["url"], s["queue"], env.Logger), nil
}

func newKafka(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("brokers", "topic"); err != nil {
		return nil, err
	}
	var brokers []string
	for _, b := range strings.Split(s["brokers"], ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return kafka.New(name, brokers, s["topic"], s["group_id"], env.Logger), nil
}

func newMQTT5(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url", "topic"); err != nil {
		return nil, err
	}
	return mqtt5.New(name, s["url"], s["topic"], env.Logger), nil
}

func newAMQP10(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("url", "address"); err != nil {
		return nil, err
	}
	return amqp10.New(name, s["url"], s["address"], env.Logger), nil
}

func newRedis(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("addr", "channel"); err != nil {
		return nil, err
	}
	db, err := s.intOr("db", 0)
	if err != nil {
		return nil, err
	}
	return redis.New(name, s["addr"], s["password"], db, s["channel"], env.Logger), nil
}

func newSolace(name string, s Settings, env Env) (core.Surface, error) {
	if err := s.require("host", "vpn", "topic"); err != nil {
		return nil, err
	}
	return solace.New(name, s["host"], s["vpn"], s["username"], s["password"], s["topic"], env.Logger), nil
}

func newMemory(name string, s Settings, _ Env) (core.Surface, error) {
	buffer, err := s.intOr("buffer", 16)
	if err != nil {
		return nil, err
	}
	return memory.New(name, buffer), nil
}
