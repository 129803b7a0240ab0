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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/police-tablet/nui-bridge/internal/devhost"
	"github.com/police-tablet/nui-bridge/internal/logging"
	"github.com/police-tablet/nui-bridge/pkg/config"
	"github.com/police-tablet/nui-bridge/pkg/core"
	"github.com/police-tablet/nui-bridge/pkg/plugins"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "/etc/nui-bridge/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.New(os.Stdout, "info").Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level)
	callLog := logging.NewCallLogger(logger.With("component", "call"))

	fixtures := devhost.NewFixtures()
	initial, err := cfg.DevHost.ToFixtures()
	if err != nil {
		logger.Error("invalid fixtures", "error", err)
		os.Exit(1)
	}
	fixtures.ReplaceAll(initial)

	sessions := devhost.NewSessions(64, logger)
	srv := devhost.New(cfg.DevHost.Port, fixtures, sessions, logger, callLog)

	// Panels configured for a broker surface get pushes through that broker too.
	registry := plugins.NewRegistry(logger)
	switch cfg.Surface.Type {
	case "", "websocket", "sse", "http_poll":
	default:
		surface, err := registry.Build(cfg.Surface.Name, cfg.Surface.Type, plugins.Settings(cfg.Surface.Config), plugins.Env{Logger: logger})
		if err != nil {
			logger.Error("failed to build push sink", "type", cfg.Surface.Type, "error", err)
			os.Exit(1)
		}
		if pub, ok := surface.(core.Publisher); ok {
			srv.AddSink(pub)
			logger.Info("push sink attached", "name", surface.Name(), "type", surface.Type())
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := config.NewWatcher(configPath, logger, func(next *config.Config) {
		fs, err := next.DevHost.ToFixtures()
		if err != nil {
			logger.Error("fixture reload failed", "error", err)
			return
		}
		fixtures.ReplaceAll(fs)
	})
	go watcher.Watch(ctx)

	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error("development host failed", "error", err)
			cancel()
		}
	}()

	logger.Info("development host started", "config", configPath, "port", cfg.DevHost.Port, "fixtures", fixtures.Len())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down development host")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	srv.Stop(shutdownCtx)
	registry.CloseAll(shutdownCtx)

	logger.Info("development host stopped")
}
