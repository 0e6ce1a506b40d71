/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in, anonymous menu usage events (state
// transitions and completed selections) and crash reports over HTTP. Nothing
// leaves the process unless the user opted in and an endpoint is configured.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	applog "circlemenu/internal/log"
	"circlemenu/internal/version"
)

// Event names.
const (
	EventMenuState     = "menu_state"
	EventPetalSelected = "petal_selected"
)

// Event is the JSON body posted for every report. Items is the petal count of
// the menu that produced it; Index is only set for selections.
type Event struct {
	Name    string `json:"name"`
	TS      string `json:"ts"`
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Items   int    `json:"items"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Index   *int   `json:"index,omitempty"`
}

// Config controls the client. FromEnv reads it from:
//   - CM_TELEMETRY_OPT_IN: "1", "true", "yes" or "on" enables events
//   - CM_TELEMETRY_URL: endpoint receiving one JSON Event per POST
//   - CM_CRASH_UPLOAD_URL: endpoint receiving crash reports as text
//   - CM_TELEMETRY_TIMEOUT_MS: request timeout, default 1500
//   - CM_TELEMETRY_DEBUG: any value logs every send
type Config struct {
	OptIn        bool
	EventsURL    string
	CrashURL     string
	Timeout      time.Duration
	DebugLogging bool
}

const defaultTimeout = 1500 * time.Millisecond

func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv("CM_TELEMETRY_OPT_IN")),
		EventsURL:    strings.TrimSpace(os.Getenv("CM_TELEMETRY_URL")),
		CrashURL:     strings.TrimSpace(os.Getenv("CM_CRASH_UPLOAD_URL")),
		Timeout:      defaultTimeout,
		DebugLogging: os.Getenv("CM_TELEMETRY_DEBUG") != "",
	}
	if ms := strings.TrimSpace(os.Getenv("CM_TELEMETRY_TIMEOUT_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil && v > 0 {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// Stats counts what happened to the events handed to a client.
type Stats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Client posts events from a background goroutine so menu callbacks never
// wait on the network. The queue is bounded; events beyond it are dropped.
type Client struct {
	cfg  Config
	log  *slog.Logger
	hc   *http.Client
	q    chan Event

	pending atomic.Int64
	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64

	once   sync.Once
	closed chan struct{}
}

const queueSize = 64

// New starts a client. Close it when done.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		hc:     &http.Client{Timeout: cfg.Timeout},
		q:      make(chan Event, queueSize),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether the user opted in and an events endpoint is set.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

func (c *Client) Stats() Stats {
	return Stats{Sent: c.sent.Load(), Failed: c.failed.Load(), Dropped: c.dropped.Load()}
}

// MenuState reports a menu moving from one lifecycle phase to another.
func (c *Client) MenuState(from, to string, items int) {
	c.enqueue(Event{Name: EventMenuState, From: from, To: to, Items: items})
}

// PetalSelected reports a completed selection of petal index.
func (c *Client) PetalSelected(index, items int) {
	c.enqueue(Event{Name: EventPetalSelected, Index: &index, Items: items})
}

func (c *Client) enqueue(e Event) {
	if !c.Enabled() {
		return
	}
	e.TS = time.Now().UTC().Format(time.RFC3339Nano)
	e.Version = version.String()
	e.OS, e.Arch = runtime.GOOS, runtime.GOARCH
	c.pending.Add(1)
	select {
	case c.q <- e:
	default:
		c.pending.Add(-1)
		c.dropped.Add(1)
	}
}

// Flush waits until every queued event was attempted, ctx is done or the
// client timeout has passed.
func (c *Client) Flush(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	deadline := time.NewTimer(c.cfg.Timeout)
	defer deadline.Stop()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for c.pending.Load() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			return
		case <-tick.C:
		}
	}
}

// Close stops the sender. Queued events not yet sent are discarded.
func (c *Client) Close() { c.once.Do(func() { close(c.closed) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case e := <-c.q:
			if err := c.send(e); err != nil {
				c.failed.Add(1)
				if c.cfg.DebugLogging {
					c.log.Debug("telemetry send failed", slog.String("event", e.Name), slog.Any("err", err))
				}
			} else {
				c.sent.Add(1)
				if c.cfg.DebugLogging {
					c.log.Debug("telemetry event sent", slog.String("event", e.Name))
				}
			}
			c.pending.Add(-1)
		}
	}
}

func (c *Client) send(e Event) error {
	buf, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.Name, err)
	}
	return post(context.Background(), c.hc, c.cfg.EventsURL, "application/json", buf)
}

// UploadCrash posts report to cfg.CrashURL and waits for the answer. It does
// nothing unless the user opted in and a crash endpoint is set.
func UploadCrash(ctx context.Context, cfg Config, report []byte) error {
	if !cfg.OptIn || cfg.CrashURL == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cli := &http.Client{Timeout: cfg.Timeout}
	if err := post(ctx, cli, cfg.CrashURL, "text/plain; charset=utf-8", report); err != nil {
		return fmt.Errorf("upload crash report: %w", err)
	}
	return nil
}

func post(ctx context.Context, cli *http.Client, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := cli.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	return nil
}
