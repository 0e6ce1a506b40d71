/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package crash

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type fixedSnapshot string

func (f fixedSnapshot) Snapshot() string { return string(f) }

func TestWriteReportIncludesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path, err := writeReport(dir, fixedSnapshot("state=selecting items=3\n"), "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written to %s, want %s", path, dir)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Circle Menu Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") || !strings.Contains(s, "state=selecting items=3") {
		t.Fatalf("report content missing: %s", s)
	}
}

func TestWriteReportWithoutSnapshot(t *testing.T) {
	path, err := writeReport(t.TempDir(), nil, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	b, _ := os.ReadFile(path)
	if bytes.Contains(b, []byte("Menu:")) {
		t.Fatalf("unexpected menu section: %s", b)
	}
}

func TestReportDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CM_CRASH_DIR", dir)
	if ReportDir() != dir {
		t.Fatalf("ReportDir = %q, want %q", ReportDir(), dir)
	}
}

// TestRecoverPanickingCall ensures Recover handles a panic, writes a report
// and does not terminate the test process due to the injected exitFn.
func TestRecoverPanickingCall(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	dir := t.TempDir()
	t.Setenv("CM_CRASH_DIR", dir)

	func() {
		defer Recover(fixedSnapshot("state=open\n"))
		panic("boom")
	}()

	files, _ := os.ReadDir(dir)
	var found string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log") {
			found = filepath.Join(dir, f.Name())
		}
	}
	if found == "" {
		t.Fatalf("expected crash report file in %s", dir)
	}
	b, err := os.ReadFile(found)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) || !bytes.Contains(b, []byte("state=open")) {
		t.Fatalf("report does not contain panic and snapshot: %s", string(b))
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestUploadReportWhenOptedIn(t *testing.T) {
	var mu sync.Mutex
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = b
		mu.Unlock()
	}))
	defer srv.Close()

	path, err := writeReport(t.TempDir(), fixedSnapshot("state=closing items=5\n"), "boom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Setenv("CM_TELEMETRY_OPT_IN", "")
	t.Setenv("CM_CRASH_UPLOAD_URL", srv.URL)
	uploadReport(slog.New(slog.DiscardHandler), path)
	mu.Lock()
	if got != nil {
		t.Fatalf("report uploaded without opt-in")
	}
	mu.Unlock()

	t.Setenv("CM_TELEMETRY_OPT_IN", "1")
	uploadReport(slog.New(slog.DiscardHandler), path)
	mu.Lock()
	defer mu.Unlock()
	if !bytes.Contains(got, []byte("state=closing items=5")) {
		t.Fatalf("uploaded report = %q", got)
	}
}
