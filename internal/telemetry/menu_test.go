/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/circlemenu"
)

func TestTrackMenuAndSelectionEvents(t *testing.T) {
	var mu sync.Mutex
	var names []string
	var selected []float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		var m map[string]any
		if err := json.Unmarshal(b, &m); err == nil {
			mu.Lock()
			names = append(names, m["name"].(string))
			if idx, ok := m["index"].(float64); ok {
				selected = append(selected, idx)
			}
			mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()

	clk := anim.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tl := anim.NewTimeline(clk)
	didSelect := -1
	inner := circlemenu.DelegateFuncs{OnDidSelect: func(_ *circlemenu.Menu, _ *circlemenu.Petal, i int) { didSelect = i }}
	m := circlemenu.New(tl, nil, circlemenu.DefaultOptions(), circlemenu.WithDelegate(c.WrapDelegate(inner)))
	c.TrackMenu(m)

	m.Toggle()
	anim.Run(tl, clk, time.Second)
	m.SelectPetal(2)
	anim.Run(tl, clk, 4*time.Second)
	if didSelect != 2 {
		t.Fatalf("wrapped delegate not called, got %d", didSelect)
	}

	c.Flush(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(names)
		mu.Unlock()
		if n >= 6 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	states, selections := 0, 0
	for _, n := range names {
		switch n {
		case "menu_state":
			states++
		case "petal_selected":
			selections++
		}
	}
	if states != 5 || selections != 1 {
		t.Fatalf("events = %v", names)
	}
	if len(selected) != 1 || selected[0] != 2 {
		t.Fatalf("selected index = %v", selected)
	}
}

func TestWrapDelegateNilNext(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	d := c.WrapDelegate(nil)
	clk := anim.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tl := anim.NewTimeline(clk)
	m := circlemenu.New(tl, nil, circlemenu.DefaultOptions(), circlemenu.WithDelegate(d))
	m.Toggle()
	anim.Run(tl, clk, time.Second)
	m.SelectPetal(0)
	anim.Run(tl, clk, 4*time.Second)
	if m.State() != circlemenu.Closed {
		t.Fatalf("state = %s", m.State())
	}
}
