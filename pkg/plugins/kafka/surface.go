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

// Package kafka receives host pushes from a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name    string
	brokers []string
	topic   string
	groupID string
	logger  *slog.Logger

	mu     sync.Mutex
	reader *kafka.Reader
	writer *kafka.Writer
}

func New(name string, brokers []string, topic, groupID string, logger *slog.Logger) *Surface {
	return &Surface{
		name:    name,
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		logger:  logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "kafka" }

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	groupID := s.groupID
	if groupID == "" {
		groupID = "nui-panel-" + s.name
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  s.brokers,
		Topic:    s.topic,
		GroupID:  groupID,
		MaxWait:  500 * time.Millisecond,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	s.mu.Lock()
	s.reader = reader
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.reader = nil
		s.mu.Unlock()
		reader.Close()
	}()

	s.logger.Info("kafka surface connected",
		"name", s.name,
		"brokers", strings.Join(s.brokers, ","),
		"topic", s.topic,
		"group_id", groupID,
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka fetch: %w", err)
		}

		deliver(msg.Value)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Warn("kafka commit failed", "name", s.name, "offset", msg.Offset, "error", err)
		}
	}
}

// Publish writes a push message to the surface topic.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	s.mu.Lock()
	if s.writer == nil {
		s.writer = &kafka.Writer{
			Addr:     kafka.TCP(s.brokers...),
			Topic:    s.topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	w := s.writer
	s.mu.Unlock()

	return w.WriteMessages(ctx, kafka.Message{Value: data})
}

func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
	}
	if s.writer != nil {
		err := s.writer.Close()
		s.writer = nil
		return err
	}
	return nil
}
