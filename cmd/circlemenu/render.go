/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"circlemenu/internal/circlemenu"
	"circlemenu/internal/config"
	"circlemenu/internal/export"
)

type renderArgs struct {
	out      string
	at       time.Duration
	selectAt int
	sequence bool
	every    time.Duration
	scale    float64
}

func renderCmd(w io.Writer, args []string, ref *menuRef) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(w)
	cfgPath := fs.String("config", "", "config file (YAML or TOML)")
	var ra renderArgs
	fs.StringVar(&ra.out, "out", "frames", "output directory")
	fs.DurationVar(&ra.at, "at", 600*time.Millisecond, "time after the open tap to capture, or the sequence length")
	fs.IntVar(&ra.selectAt, "select", -1, "petal to select once open")
	fs.BoolVar(&ra.sequence, "sequence", false, "write every sampled frame instead of one")
	fs.DurationVar(&ra.every, "every", 50*time.Millisecond, "sampling step for -sequence")
	fs.Float64Var(&ra.scale, "scale", 1, "device pixels per point")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	return runRender(w, cfg, ra, ref)
}

// runRender taps the menu open, optionally selects a petal once it is open,
// and writes the frame at ra.at, or every frame up to it.
func runRender(w io.Writer, cfg config.AppConfig, ra renderArgs, ref *menuRef) error {
	h, err := newHeadless(cfg, nil)
	if err != nil {
		return err
	}
	defer h.close()
	ref.m = h.menu
	m := h.menu
	o := m.Options()
	fo := export.FrameOptions{Scale: ra.scale}

	m.Toggle()
	if ra.selectAt >= 0 {
		if ra.selectAt >= o.ItemCount {
			return fmt.Errorf("select %d: menu has %d petals", ra.selectAt, o.ItemCount)
		}
		if err := h.runUntil(circlemenu.Open, openLimit(o)); err != nil {
			return err
		}
		m.SelectPetal(ra.selectAt)
	}

	if ra.sequence {
		paths, err := export.ExportFrames(ra.out, m, h.clk, export.SequenceOptions{Frame: fo, Total: ra.at, Every: ra.every})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "wrote %d frames to %s\n", len(paths), ra.out)
		return nil
	}
	h.run(ra.at)
	p := filepath.Join(ra.out, "frame.png")
	if err := export.ExportFramePNG(p, m, fo); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "wrote %s (%s)\n", p, m.State())
	return nil
}
