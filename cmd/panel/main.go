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

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/police-tablet/nui-bridge/internal/bus"
	"github.com/police-tablet/nui-bridge/internal/datasync"
	"github.com/police-tablet/nui-bridge/internal/environment"
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/internal/transport"
	"github.com/police-tablet/nui-bridge/internal/visibility"
	"github.com/police-tablet/nui-bridge/pkg/config"
	"github.com/police-tablet/nui-bridge/pkg/plugins"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "/etc/nui-bridge/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.New(os.Stderr, "info").Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)
	callLog := logging.NewCallLogger(logger.With("component", "call"))

	detector := environment.NewDetector(environment.EnvProbe(cfg.Bridge.HostProbeEnv), cfg.Bridge.FallbackChannel)
	caller := newTransport(cfg, detector, logger, callLog)

	policies, err := cfg.Cache.ToPolicies()
	if err != nil {
		logger.Error("invalid cache policies", "error", err)
		os.Exit(1)
	}

	cache := datasync.NewCache(logger.With("component", "cache"))
	store := datasync.NewStore(cache, caller, policies)

	events := bus.New(logger.With("component", "bus"), callLog)
	vis := visibility.New(events, cache, caller, logger.With("component", "visibility"))
	vis.OnChange(func(visible bool) {
		logger.Info("panel visibility changed", "visible", visible)
	})
	views := newViewWatch(cache, datasync.Keys(), logger.With("component", "view"))
	vis.OnChange(views.toggle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := plugins.NewRegistry(logger)
	if cfg.Surface.Type != "" {
		surface, err := registry.Build(cfg.Surface.Name, cfg.Surface.Type, plugins.Settings(cfg.Surface.Config), plugins.Env{
			PanelID: uuid.New().String(),
			Logger:  logger.With("component", "surface"),
		})
		if err != nil {
			logger.Error("failed to build surface", "type", cfg.Surface.Type, "error", err)
			os.Exit(1)
		}
		go func() {
			if err := events.Listen(ctx, surface); err != nil {
				logger.Error("surface stopped", "name", surface.Name(), "error", err)
			}
		}()
	}

	watcher := config.NewWatcher(configPath, logger, func(next *config.Config) {
		applyPolicies(cache, next, logger)
	})
	go watcher.Watch(ctx)

	go func() {
		newConsole(store, vis, os.Stdout).Run(ctx, os.Stdin)
		cancel()
	}()

	logger.Info("panel runtime started",
		"config", configPath,
		"mode", cfg.Bridge.Mode,
		"host_attached", detector.IsHostAttached(),
		"channel", detector.ChannelID(),
		"surface", cfg.Surface.Type,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down panel runtime")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	registry.CloseAll(shutdownCtx)
	vis.Stop()
	views.toggle(false)
	cache.Close()

	logger.Info("panel runtime stopped")
}

func newTransport(cfg *config.Config, detector *environment.Detector, logger *slog.Logger, callLog *logging.CallLogger) transport.Transport {
	opts := []transport.Option{
		transport.WithMaxResponseBytes(cfg.Bridge.MaxResponseBytes),
		transport.WithCallLogger(callLog),
	}
	if cfg.Bridge.Origin != "" {
		opts = append(opts, transport.WithOrigin(cfg.Bridge.Origin))
	}

	live := transport.NewLive(detector, logger.With("component", "transport"), opts...)
	stub := transport.NewStub(logger.With("component", "transport"))

	switch cfg.Bridge.Mode {
	case config.ModeLive:
		return live
	case config.ModeStub:
		return stub
	default:
		return transport.NewAuto(detector, live, stub)
	}
}

// applyPolicies resets every key to its default policy overlaid with the
// reloaded configuration.
func applyPolicies(cache *datasync.Cache, cfg *config.Config, logger *slog.Logger) {
	configured, err := cfg.Cache.ToPolicies()
	if err != nil {
		logger.Error("cache policy reload failed", "error", err)
		return
	}
	policies := datasync.DefaultPolicies()
	for k, p := range configured {
		policies[k] = p
	}
	for k, p := range policies {
		if err := cache.SetPolicy(k, p); err != nil {
			logger.Warn("cache policy not applied", "key", k, "error", err)
		}
	}
}
