/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/circlemenu"
	"circlemenu/internal/config"
	"circlemenu/internal/icon"
	applog "circlemenu/internal/log"
	"circlemenu/internal/telemetry"
)

// headless is a menu running on a manual clock with its telemetry client.
type headless struct {
	menu  *circlemenu.Menu
	clk   *anim.ManualClock
	start time.Time
	tel   *telemetry.Client
}

func (h *headless) elapsed() time.Duration { return h.clk.Now().Sub(h.start) }

func (h *headless) run(d time.Duration) { anim.Run(h.menu.Timeline(), h.clk, d) }

// runUntil steps frames until the menu reaches want, failing once limit has
// passed without it.
func (h *headless) runUntil(want circlemenu.State, limit time.Duration) error {
	tl := h.menu.Timeline()
	for end := h.clk.Now().Add(limit); h.menu.State() != want; {
		if !h.clk.Now().Before(end) {
			return fmt.Errorf("menu still %s after %s, want %s", h.menu.State(), limit, want)
		}
		tl.Tick(h.clk.Advance(anim.FrameInterval))
	}
	return nil
}

func (h *headless) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.tel.Flush(ctx)
	h.tel.Close()
}

// newHeadless builds a menu from cfg. When trace is non-nil every delegate
// callback and state change is written to it with its time offset.
func newHeadless(cfg config.AppConfig, trace io.Writer) (*headless, error) {
	opts, err := cfg.MenuOptions()
	if err != nil {
		return nil, err
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := &headless{clk: anim.NewManualClock(start), start: start}
	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	h.tel = telemetry.New(tcfg)

	say := func(format string, a ...any) {
		if trace != nil {
			_, _ = fmt.Fprintf(trace, "%6dms  %s\n", h.elapsed().Milliseconds(), fmt.Sprintf(format, a...))
		}
	}
	delegate := circlemenu.DelegateFuncs{
		OnWillDisplay: func(_ *circlemenu.Menu, _ *circlemenu.Petal, i int) { say("will display petal %d", i) },
		OnWillSelect:  func(_ *circlemenu.Menu, _ *circlemenu.Petal, i int) { say("will select petal %d", i) },
		OnDidSelect:   func(_ *circlemenu.Menu, _ *circlemenu.Petal, i int) { say("did select petal %d", i) },
	}
	icons := icon.NewLoader(cfg.Menu.IconDir, int(opts.ButtonSize), applog.WithComponent("icon"))
	h.menu = circlemenu.New(anim.NewTimeline(h.clk), nil, opts,
		circlemenu.WithDelegate(h.tel.WrapDelegate(delegate)),
		circlemenu.WithIcons(icons))
	h.menu.OnStateChange(func(from, to circlemenu.State) { say("%s -> %s", from, to) })
	h.tel.TrackMenu(h.menu)
	return h, nil
}

func demoCmd(w io.Writer, args []string, ref *menuRef) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(w)
	cfgPath := fs.String("config", "", "config file (YAML or TOML)")
	sel := fs.Int("select", 0, "petal to select once open; -1 closes instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	return runDemo(w, cfg, *sel, ref)
}

// openLimit bounds the open sequence: staggered shows, bounce and icon swap.
func openLimit(o circlemenu.Options) time.Duration {
	return o.OpenDuration + time.Duration(o.ItemCount)*o.ShowDelay + circlemenu.BounceDuration + time.Second
}

// runDemo opens the menu, then selects petal sel (or toggles it closed when
// sel < 0) and prints a snapshot after each phase.
func runDemo(w io.Writer, cfg config.AppConfig, sel int, ref *menuRef) error {
	h, err := newHeadless(cfg, w)
	if err != nil {
		return err
	}
	defer h.close()
	ref.m = h.menu
	m := h.menu
	o := m.Options()

	m.Toggle()
	if err := h.runUntil(circlemenu.Open, openLimit(o)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "--- open\n%s", m.Snapshot())

	if sel >= 0 {
		if sel >= o.ItemCount {
			return fmt.Errorf("select %d: menu has %d petals", sel, o.ItemCount)
		}
		m.SelectPetal(sel)
		h.run(o.Duration + circlemenu.IconSpinDuration + 100*time.Millisecond)
	} else {
		m.Toggle()
		h.run(time.Second)
	}
	_, _ = fmt.Fprintf(w, "--- done\n%s", m.Snapshot())
	return nil
}
