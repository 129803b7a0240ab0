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

// Package httppoll receives host pushes by long-polling a development host.
package httppoll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/police-tablet/nui-bridge/pkg/core"
)

type Surface struct {
	name    string
	baseURL string
	panelID string
	client  *http.Client
	logger  *slog.Logger
	maxBody int64
}

func New(name, baseURL, panelID string, client *http.Client, logger *slog.Logger) *Surface {
	if client == nil {
		client = http.DefaultClient
	}
	return &Surface{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		panelID: panelID,
		client:  client,
		logger:  logger,
		maxBody: 1 << 20,
	}
}

func (s *Surface) Name() string { return s.name }
func (s *Surface) Type() string { return "http_poll" }

func (s *Surface) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(core.PanelIDHeader, s.panelID)
	return s.client.Do(req)
}

func (s *Surface) Open(ctx context.Context, deliver core.DeliverFunc) error {
	resp, err := s.do(ctx, http.MethodPost, "/subscribe")
	if err != nil {
		return fmt.Errorf("http_poll subscribe: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("http_poll subscribe: unexpected status %d", resp.StatusCode)
	}
	defer s.unsubscribe()

	s.logger.Info("http_poll surface subscribed", "name", s.name, "url", s.baseURL, "panel_id", s.panelID)

	for {
		resp, err := s.do(ctx, http.MethodGet, "/poll")
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("http_poll poll: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("http_poll read: %w", err)
			}
			deliver(data)
		case http.StatusNoContent:
			resp.Body.Close()
		case http.StatusGone, http.StatusNotFound:
			resp.Body.Close()
			return core.ErrSurfaceClosed
		default:
			resp.Body.Close()
			return fmt.Errorf("http_poll poll: unexpected status %d", resp.StatusCode)
		}
	}
}

func (s *Surface) unsubscribe() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := s.do(ctx, http.MethodDelete, "/unsubscribe")
	if err != nil {
		s.logger.Warn("http_poll unsubscribe failed", "name", s.name, "error", err)
		return
	}
	resp.Body.Close()
}

func (s *Surface) Close(_ context.Context) error { return nil }
