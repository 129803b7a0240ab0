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

// Package amqp10 receives host pushes from an AMQP 1.0 address.
package amqp10

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Azure/go-amqp"
	"github.com/google/uuid"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name    string
	url     string
	address string
	logger  *slog.Logger

	mu       sync.Mutex
	conn     *amqp.Conn
	sendSess *amqp.Session
	sender   *amqp.Sender
}

func New(name, url, address string, logger *slog.Logger) *Surface {
	return &Surface{
		name:    name,
		url:     url,
		address: address,
		logger:  logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "amqp10" }

func (s *Surface) dial(ctx context.Context) (*amqp.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := amqp.Dial(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("amqp10 dial: %w", err)
	}
	s.conn = conn
	return conn, nil
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	recvSess, err := conn.NewSession(ctx, nil)
	if err != nil {
		return fmt.Errorf("amqp10 consumer session: %w", err)
	}
	defer recvSess.Close(context.Background())

	receiver, err := recvSess.NewReceiver(ctx, s.address, &amqp.ReceiverOptions{
		Credit: 1,
	})
	if err != nil {
		return fmt.Errorf("amqp10 receiver: %w", err)
	}
	defer receiver.Close(context.Background())

	s.logger.Info("amqp10 surface connected", "name", s.name, "address", s.address)

	for {
		msg, err := receiver.Receive(ctx, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("amqp10 receive: %w", err)
		}

		deliver(msg.GetData())

		if err := receiver.AcceptMessage(ctx, msg); err != nil && ctx.Err() == nil {
			s.logger.Warn("amqp10 accept failed", "name", s.name, "error", err)
		}
	}
}

// Publish sends a push message to the surface address.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.sender == nil {
		if s.sendSess == nil {
			s.sendSess, err = conn.NewSession(ctx, nil)
		}
		if err == nil {
			s.sender, err = s.sendSess.NewSender(ctx, s.address, nil)
		}
	}
	sender := s.sender
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("amqp10 sender: %w", err)
	}

	return sender.Send(ctx, &amqp.Message{
		Data: [][]byte{data},
		Properties: &amqp.MessageProperties{
			MessageID: uuid.New().String(),
		},
	}, nil)
}

func (s *Surface) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sender != nil {
		s.sender.Close(ctx)
		s.sender = nil
	}
	if s.sendSess != nil {
		s.sendSess.Close(ctx)
		s.sendSess = nil
	}
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
