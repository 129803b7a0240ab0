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

import "time"

type Direction int

const (
	DirectionOutbound Direction = iota
	DirectionInbound
)

func (d Direction) String() string {
	if d == DirectionInbound {
		return "inbound"
	}
	return "outbound"
}

// Reserved push events consumed by the visibility controller.
const (
	EventPanelOpen  = "tablet:open"
	EventPanelClose = "tablet:close"
)

// TypeField is the discriminator carried by every inbound push message.
const TypeField = "type"

// Record describes one outbound call or inbound message for the call log.
type Record struct {
	CorrelationID string
	Operation     string
	Direction     Direction
	PayloadSize   int
	Status        int
	Duration      time.Duration
	Timestamp     time.Time
}
