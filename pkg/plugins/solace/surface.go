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

// Package solace receives host pushes from a Solace PubSub+ topic.
package solace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"solace.dev/go/messaging"
	"solace.dev/go/messaging/pkg/solace"
	"solace.dev/go/messaging/pkg/solace/config"
	"solace.dev/go/messaging/pkg/solace/message"
	"solace.dev/go/messaging/pkg/solace/resource"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

const terminateGrace = 5 * time.Second

type Surface struct {
	name     string
	host     string
	vpn      string
	username string
	password string
	topic    string
	logger   *slog.Logger

	mu        sync.Mutex
	service   solace.MessagingService
	publisher solace.DirectMessagePublisher
}

func New(name, host, vpn, username, password, topic string, logger *slog.Logger) *Surface {
	return &Surface{
		name:     name,
		host:     host,
		vpn:      vpn,
		username: username,
		password: password,
		topic:    topic,
		logger:   logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "solace" }

func (s *Surface) connect() (solace.MessagingService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.service != nil && s.service.IsConnected() {
		return s.service, nil
	}

	service, err := messaging.NewMessagingServiceBuilder().
		FromConfigurationProvider(config.ServicePropertyMap{
			config.TransportLayerPropertyHost:                s.host,
			config.ServicePropertyVPNName:                    s.vpn,
			config.AuthenticationPropertySchemeBasicUserName: s.username,
			config.AuthenticationPropertySchemeBasicPassword: s.password,
		}).Build()
	if err != nil {
		return nil, fmt.Errorf("solace build: %w", err)
	}
	if err := service.Connect(); err != nil {
		return nil, fmt.Errorf("solace connect: %w", err)
	}
	s.service = service
	s.publisher = nil
	s.logger.Info("solace connected", "name", s.name, "host", s.host)
	return service, nil
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	service, err := s.connect()
	if err != nil {
		return err
	}

	receiver, err := service.CreateDirectMessageReceiverBuilder().
		WithSubscriptions(resource.TopicSubscriptionOf(s.topic)).
		Build()
	if err != nil {
		return fmt.Errorf("solace receiver build: %w", err)
	}
	if err := receiver.Start(); err != nil {
		return fmt.Errorf("solace receiver start: %w", err)
	}
	defer receiver.Terminate(terminateGrace)

	msgs := make(chan []byte, 64)
	err = receiver.ReceiveAsync(func(in message.InboundMessage) {
		payload, ok := in.GetPayloadAsBytes()
		if !ok {
			return
		}
		select {
		case msgs <- payload:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("solace receive: %w", err)
	}

	s.logger.Info("solace surface subscribed", "name", s.name, "topic", s.topic)

	for {
		select {
		case <-ctx.Done():
			return nil
		case data := <-msgs:
			deliver(data)
		}
	}
}

// Publish sends a push message to the surface topic.
func (s *Surface) Publish(_ context.Context, data []byte) error {
	service, err := s.connect()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.publisher == nil {
		pub, err := service.CreateDirectMessagePublisherBuilder().Build()
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("solace publisher build: %w", err)
		}
		if err := pub.Start(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("solace publisher start: %w", err)
		}
		s.publisher = pub
	}
	pub := s.publisher
	s.mu.Unlock()

	msg, err := service.MessageBuilder().BuildWithByteArrayPayload(data)
	if err != nil {
		return fmt.Errorf("solace message: %w", err)
	}
	return pub.Publish(msg, resource.TopicOf(s.topic))
}

func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publisher != nil {
		s.publisher.Terminate(terminateGrace)
		s.publisher = nil
	}
	if s.service != nil {
		err := s.service.Disconnect()
		s.service = nil
		return err
	}
	return nil
}
