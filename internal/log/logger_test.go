/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { Init(Options{Level: "info"}) })
}

func lastJSONLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("last line is not JSON: %v\n%s", err, b)
	}
	return m
}

func TestSelectionLogToRotatedFile(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "menu.json")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: path, Console: &console})

	l := WithOperation(WithComponent("circlemenu"), "select")
	l.DebugContext(WithState(context.Background(), "selecting"), "petal selected", slog.Int("petal", 2))

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	m := lastJSONLine(t, b)
	for k, want := range map[string]any{
		"app":        "circlemenu",
		"component":  "circlemenu",
		"op":         "select",
		"menu_state": "selecting",
		"msg":        "petal selected",
		"petal":      float64(2),
	} {
		if m[k] != want {
			t.Errorf("%s = %v, want %v", k, m[k], want)
		}
	}
	if _, ok := m["ver"].(string); !ok {
		t.Errorf("ver missing: %v", m)
	}
	if c := lastJSONLine(t, console.Bytes()); c["menu_state"] != "selecting" {
		t.Errorf("console copy lost the state: %v", c)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CM_LOG_LEVEL", "warn")
	t.Setenv("CM_LOG_FORMAT", "json")
	t.Setenv("CM_LOG_SOURCE", "TRUE")
	t.Setenv("CM_LOG_FILE", "/var/log/circlemenu.json")
	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "/var/log/circlemenu.json" {
		t.Fatalf("FromEnv = %+v", opts)
	}

	t.Setenv("CM_LOG_LEVEL", "")
	t.Setenv("CM_LOG_FORMAT", "")
	t.Setenv("CM_LOG_SOURCE", "")
	t.Setenv("CM_LOG_FILE", "")
	if opts := FromEnv(); opts.Level != "info" || opts.Format != "console" || opts.AddSource || opts.File != "" {
		t.Fatalf("defaults = %+v", opts)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":     slog.LevelDebug,
		" Warning ": slog.LevelWarn,
		"warn":      slog.LevelWarn,
		"ERROR":     slog.LevelError,
		"verbose":   slog.LevelInfo,
		"":          slog.LevelInfo,
	} {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleHandlerFormatsOverlayAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}, w: &buf}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info enabled at warn level")
	}

	l := slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "gradient")}).WithGroup("overlay"))
	l.Warn("fade interrupted", slog.Float64("alpha", 0.25), slog.Bool("dimmed", true), slog.Int("stops", 2))
	l.Info("hidden")

	out := buf.String()
	for _, want := range []string{"WRN", "fade interrupted", "component=gradient", "overlay.alpha=0.25", "overlay.dimmed=true", "overlay.stops=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
}

func TestEnricherAddsMenuState(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(withEnricher(&prettyTextHandler{opts: prettyOpts{Level: slog.LevelDebug}, w: &buf}))
	l.DebugContext(WithState(context.Background(), "opening"), "state change", slog.String("from", "closed"))
	l.Debug("plain")
	out := buf.String()
	if !strings.Contains(out, "menu_state=opening") || !strings.Contains(out, "from=closed") {
		t.Fatalf("state attr missing: %q", out)
	}
	if strings.Count(out, "menu_state=") != 1 {
		t.Fatalf("state attr leaked to plain record: %q", out)
	}
}

func TestInitWritesToConsoleWriter(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	Init(Options{Level: "info", Console: &buf})
	WithComponent("icon").Debug("cache hit")
	WithComponent("icon").Warn("icon unavailable, showing none", slog.String("icon", "share"), slog.Duration("took", time.Millisecond))
	out := buf.String()
	if strings.Contains(out, "cache hit") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "component=icon") || !strings.Contains(out, "icon=share") || !strings.Contains(out, "app=circlemenu") {
		t.Fatalf("console output = %q", out)
	}
}
