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

// Package redis receives host pushes from a Redis pub/sub channel.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name    string
	channel string
	client  *redis.Client
	logger  *slog.Logger
}

func New(name, addr, password string, db int, channel string, logger *slog.Logger) *Surface {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewWithClient(name, client, channel, logger)
}

func NewWithClient(name string, client *redis.Client, channel string, logger *slog.Logger) *Surface {
	return &Surface{name: name, channel: channel, client: client, logger: logger}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "redis" }

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := s.client.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis ping: %w", err)
	}

	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}

	s.logger.Info("redis surface connected", "name", s.name, "channel", s.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return core.ErrSurfaceClosed
			}
			deliver([]byte(msg.Payload))
		}
	}
}

// Publish sends a push message to the surface channel.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	return s.client.Publish(ctx, s.channel, data).Err()
}

func (s *Surface) Close(_ context.Context) error {
	return s.client.Close()
}
