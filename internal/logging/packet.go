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

package logging

import (
	"log/slog"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

// CallLogger writes one line per bridge call or inbound message. Payload
// contents are never logged, only their size.
type CallLogger struct {
	logger *slog.Logger
}

func NewCallLogger(logger *slog.Logger) *CallLogger {
	return &CallLogger{logger: logger}
}

func (p *CallLogger) Log(rec core.Record) {
	if p == nil {
		return
	}
	p.logger.Info("call",
		"correlation_id", rec.CorrelationID,
		"operation", rec.Operation,
		"direction", rec.Direction.String(),
		"payload_size", rec.PayloadSize,
		"status", rec.Status,
		"duration_ms", rec.Duration.Milliseconds(),
		"timestamp", rec.Timestamp,
	)
}
