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

// Package rabbitmq receives host pushes from a RabbitMQ queue.
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name   string
	url    string
	queue  string
	logger *slog.Logger

	mu    sync.Mutex
	conn  *amqp.Connection
	pubCh *amqp.Channel
}

func New(name, url, queue string, logger *slog.Logger) *Surface {
	return &Surface{
		name:   name,
		url:    url,
		queue:  queue,
		logger: logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "rabbitmq" }

func (s *Surface) connect() (*amqp.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil && !s.conn.IsClosed() {
		return s.conn, nil
	}

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	s.conn = conn
	s.pubCh = nil
	return conn, nil
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	conn, err := s.connect()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq consumer channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", s.queue, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}

	consumerTag := fmt.Sprintf("nui-panel-%s-%s", s.name, uuid.New().String()[:8])
	deliveries, err := ch.Consume(
		s.queue,
		consumerTag,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	s.logger.Info("rabbitmq surface connected", "name", s.name, "queue", s.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return core.ErrSurfaceClosed
			}
			deliver(d.Body)
			if err := d.Ack(false); err != nil {
				s.logger.Warn("rabbitmq ack failed", "name", s.name, "error", err)
			}
		}
	}
}

// Publish sends a push message to the surface queue.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	conn, err := s.connect()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.pubCh == nil || s.pubCh.IsClosed() {
		s.pubCh, err = conn.Channel()
		if err == nil {
			_, err = s.pubCh.QueueDeclare(s.queue, true, false, false, false, nil)
		}
	}
	pubCh := s.pubCh
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("rabbitmq publish channel: %w", err)
	}

	return pubCh.PublishWithContext(ctx,
		"",
		s.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
			MessageId:   uuid.New().String(),
			Timestamp:   time.Now().UTC(),
		},
	)
}

func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pubCh != nil {
		s.pubCh.Close()
		s.pubCh = nil
	}
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
