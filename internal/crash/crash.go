/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package crash turns a panic into a logged error and a crash report that
// includes a snapshot of the menu state.
package crash

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "circlemenu/internal/log"
	"circlemenu/internal/telemetry"
	"circlemenu/internal/version"
)

// Snapshotter describes live state for the report. *circlemenu.Menu
// implements it.
type Snapshotter interface {
	Snapshot() string
}

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// ReportDir returns where crash reports go: CM_CRASH_DIR or the temp dir.
func ReportDir() string {
	if d := strings.TrimSpace(os.Getenv("CM_CRASH_DIR")); d != "" {
		return d
	}
	return os.TempDir()
}

// Recover captures a panic, logs it with its stack trace, writes a crash
// report (with s's snapshot when s is non-nil) and exits with code 2.
//
// Usage: defer crash.Recover(menu)
func Recover(s Snapshotter) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(ReportDir(), s, r, stack)
		if err != nil {
			l.Error("crash report not written", slog.Any("err", err), slog.String("path", reportPath))
		}
		uploadReport(l, reportPath)
		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

func writeReport(dir string, s Snapshotter, panicVal any, stack []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, fmt.Errorf("create crash dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Circle Menu Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n", panicVal)
	if s != nil {
		_, _ = fmt.Fprintf(&buf, "\nMenu:\n%s", s.Snapshot())
	}
	_, _ = fmt.Fprintf(&buf, "\nStack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

// uploadReport sends the written report when the user opted in.
func uploadReport(l *slog.Logger, path string) {
	cfg := telemetry.FromEnv()
	if !cfg.OptIn || cfg.CrashURL == "" {
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		l.Error("crash report not uploaded", slog.Any("err", err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := telemetry.UploadCrash(ctx, cfg, b); err != nil {
		l.Error("crash report not uploaded", slog.Any("err", err))
	}
}
