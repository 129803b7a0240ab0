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

// Package mqtt5 receives host pushes from an MQTT v5 topic.
package mqtt5

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/google/uuid"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name      string
	brokerURL string
	topic     string
	logger    *slog.Logger

	mu  sync.Mutex
	cm  *autopaho.ConnectionManager
	pub *autopaho.ConnectionManager
}

func New(name, brokerURL, topic string, logger *slog.Logger) *Surface {
	return &Surface{
		name:      name,
		brokerURL: brokerURL,
		topic:     topic,
		logger:    logger,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "mqtt5" }

func (s *Surface) config(role string, onPublish func(paho.PublishReceived) (bool, error), onUp func(*autopaho.ConnectionManager)) (autopaho.ClientConfig, error) {
	serverURL, err := url.Parse(s.brokerURL)
	if err != nil {
		return autopaho.ClientConfig{}, fmt.Errorf("mqtt5 invalid URL: %w", err)
	}

	cfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{serverURL},
		KeepAlive:                     30,
		CleanStartOnInitialConnection: true,
		SessionExpiryInterval:         60,
		OnConnectionUp: func(cm *autopaho.ConnectionManager, _ *paho.Connack) {
			s.logger.Info("mqtt5 connection up", "name", s.name, "role", role)
			if onUp != nil {
				onUp(cm)
			}
		},
		ClientConfig: paho.ClientConfig{
			ClientID: "nui-panel-" + role + "-" + uuid.New().String()[:8],
		},
	}
	if onPublish != nil {
		cfg.ClientConfig.OnPublishReceived = []func(paho.PublishReceived) (bool, error){onPublish}
	}
	return cfg, nil
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	msgs := make(chan []byte, 64)

	onPublish := func(pr paho.PublishReceived) (bool, error) {
		if pr.Packet.Topic != s.topic {
			return false, nil
		}
		select {
		case msgs <- pr.Packet.Payload:
		case <-ctx.Done():
		}
		return true, nil
	}

	// Subscribing on every connection-up restores the subscription after a reconnect.
	onUp := func(cm *autopaho.ConnectionManager) {
		if _, err := cm.Subscribe(ctx, &paho.Subscribe{
			Subscriptions: []paho.SubscribeOptions{{Topic: s.topic, QoS: 1}},
		}); err != nil && ctx.Err() == nil {
			s.logger.Error("mqtt5 subscribe failed", "name", s.name, "topic", s.topic, "error", err)
		}
	}

	cfg, err := s.config("sub", onPublish, onUp)
	if err != nil {
		return err
	}

	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("mqtt5 connection: %w", err)
	}
	if err := cm.AwaitConnection(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("mqtt5 await connection: %w", err)
	}

	s.mu.Lock()
	s.cm = cm
	s.mu.Unlock()

	s.logger.Info("mqtt5 surface connected", "name", s.name, "broker", s.brokerURL, "topic", s.topic)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-cm.Done():
			return core.ErrSurfaceClosed
		case data := <-msgs:
			deliver(data)
		}
	}
}

// Publish sends a push message to the surface topic.
func (s *Surface) Publish(ctx context.Context, data []byte) error {
	s.mu.Lock()
	pub := s.pub
	s.mu.Unlock()

	if pub == nil {
		cfg, err := s.config("pub", nil, nil)
		if err != nil {
			return err
		}
		pub, err = autopaho.NewConnection(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("mqtt5 connection: %w", err)
		}
		s.mu.Lock()
		if s.pub != nil {
			s.mu.Unlock()
			pub.Disconnect(ctx)
			pub = s.pub
		} else {
			s.pub = pub
			s.mu.Unlock()
		}
	}

	if err := pub.AwaitConnection(ctx); err != nil {
		return fmt.Errorf("mqtt5 await connection: %w", err)
	}
	_, err := pub.Publish(ctx, &paho.Publish{
		Topic:   s.topic,
		QoS:     1,
		Payload: data,
	})
	return err
}

func (s *Surface) Close(ctx context.Context) error {
	s.mu.Lock()
	cm, pub := s.cm, s.pub
	s.cm, s.pub = nil, nil
	s.mu.Unlock()

	var err error
	if cm != nil {
		err = cm.Disconnect(ctx)
	}
	if pub != nil {
		if perr := pub.Disconnect(ctx); err == nil {
			err = perr
		}
	}
	return err
}
