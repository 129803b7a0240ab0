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

// Package sse receives host pushes from a server-sent event stream.
package sse

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

const maxEventBytes = 1 << 20

type Surface struct {
	name    string
	url     string
	panelID string
	client  *http.Client
	logger  *slog.Logger
}

func New(name, url, panelID string, client *http.Client, logger *slog.Logger) *Surface {
	if client == nil {
		client = http.DefaultClient
	}
	return &Surface{name: name, url: url, panelID: panelID, client: client, logger: logger}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "sse" }

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("sse request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if s.panelID != "" {
		req.Header.Set(core.PanelIDHeader, s.panelID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("sse connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sse connect: unexpected status %d", resp.StatusCode)
	}

	s.logger.Info("sse surface connected", "name", s.name, "url", s.url)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventBytes)

	var data [][]byte
	for scanner.Scan() {
		line := scanner.Bytes()
		switch {
		case len(line) == 0:
			if len(data) > 0 {
				deliver(bytes.Join(data, []byte("\n")))
				data = nil
			}
		case bytes.HasPrefix(line, []byte(":")):
		case bytes.HasPrefix(line, []byte("data:")):
			v := bytes.TrimPrefix(line[len("data:"):], []byte(" "))
			data = append(data, append([]byte(nil), v...))
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("sse read: %w", err)
	}
	return core.ErrSurfaceClosed
}

func (s *Surface) Close(_ context.Context) error { return nil }
