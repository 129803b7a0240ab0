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

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/police-tablet/nui-bridge/internal/datasync"
	"github.com/police-tablet/nui-bridge/internal/visibility"
	"github.com/police-tablet/nui-bridge/pkg/catalog"
)

var errUsage = errors.New("usage: esc | close | keys | ops | get <key> | call <op> [json]")

// console drives a headless panel from line-oriented developer commands.
type console struct {
	store *datasync.Store
	vis   *visibility.Controller
	out   io.Writer
}

func newConsole(store *datasync.Store, vis *visibility.Controller, out io.Writer) *console {
	return &console{store: store, vis: vis, out: out}
}

// Run executes commands until in is exhausted or ctx is done.
func (c *console) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if err := c.Exec(ctx, scanner.Text()); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
}

func (c *console) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "esc":
		c.vis.HandleKey(visibility.EscapeKey)
		fmt.Fprintf(c.out, "visible=%t\n", c.vis.Visible())
	case "close":
		c.vis.Close()
		fmt.Fprintf(c.out, "visible=%t\n", c.vis.Visible())
	case "keys":
		for _, k := range datasync.Keys() {
			fmt.Fprintf(c.out, "%s stale=%t\n", k, c.store.Cache().Stale(k))
		}
	case "ops":
		for _, d := range catalog.Descriptors() {
			kind := "query"
			if d.Mutating {
				kind = "mutation"
			}
			fmt.Fprintf(c.out, "%s %s\n", d.Name, kind)
		}
	case "get":
		if rest == "" {
			return errUsage
		}
		v, err := c.store.Cache().Get(ctx, datasync.Key(rest))
		if err != nil {
			return err
		}
		return c.print(v)
	case "call":
		if rest == "" {
			return errUsage
		}
		op, payload, _ := strings.Cut(rest, " ")
		payload = strings.TrimSpace(payload)
		if payload == "" {
			payload = "{}"
		}
		if !json.Valid([]byte(payload)) {
			return fmt.Errorf("payload for %s is not valid JSON", op)
		}
		raw, err := c.store.CallRaw(ctx, op, json.RawMessage(payload))
		if err != nil {
			return err
		}
		return c.print(raw)
	default:
		return errUsage
	}
	return nil
}

func (c *console) print(v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintf(c.out, "%s\n", out)
	return nil
}
