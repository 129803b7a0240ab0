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

package core

import "context"

// DeliverFunc receives one inbound host message at a time.
type DeliverFunc func(data []byte)

// Surface is the inbound host-communication surface of a panel. Open blocks,
// delivering messages in arrival order, until ctx is done or the surface fails.
type Surface interface {
	Name() string
	Type() string
	Open(ctx context.Context, deliver DeliverFunc) error
	Close(ctx context.Context) error
}

// SessionManager tracks panels connected to a development host.
type SessionManager interface {
	CreateSession(ctx context.Context, surface string, panelID string) (*Session, error)
	DestroySession(sessionID string) error
}

// Session is one panel connected to a development host. Done is closed when
// the session is destroyed.
type Session struct {
	ID         string
	PanelID    string
	Surface    string
	Downstream chan []byte
	Done       <-chan struct{}
	Cancel     context.CancelFunc
}

// Publisher is implemented by surfaces that can also carry host pushes, so a
// development host can feed panels listening on a broker.
type Publisher interface {
	Publish(ctx context.Context, data []byte) error
}
