/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/circlemenu"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleMenu() (*circlemenu.Menu, *anim.ManualClock) {
	clk := anim.NewManualClock(epoch)
	opts := circlemenu.DefaultOptions()
	opts.PetalColors = []color.Color{color.NRGBA{R: 255, A: 255}}
	return circlemenu.New(anim.NewTimeline(clk), nil, opts), clk
}

func alphaAt(t *testing.T, img interface {
	At(x, y int) color.Color
}, x, y int) uint32 {
	t.Helper()
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestRenderClosedFrameShowsOnlyCenter(t *testing.T) {
	m, _ := sampleMenu()
	img, err := RenderFrame(m, FrameOptions{})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Fatalf("bounds = %v, want 300x300", b)
	}
	if alphaAt(t, img, 150, 150) == 0 {
		t.Fatalf("center button missing")
	}
	if alphaAt(t, img, 150, 50) != 0 || alphaAt(t, img, 2, 2) != 0 {
		t.Fatalf("closed menu painted petals or backdrop")
	}
}

func TestRenderOpenFrameShowsPetalsAndBackdrop(t *testing.T) {
	m, clk := sampleMenu()
	m.Toggle()
	anim.Run(m.Timeline(), clk, 600*time.Millisecond)
	img, err := RenderFrame(m, FrameOptions{Scale: 2})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 600 {
		t.Fatalf("scaled width = %d, want 600", b.Dx())
	}
	// first petal rests straight up, 100 points above the center
	r, g, _, a := img.At(300, 100).RGBA()
	if a == 0 || r <= g {
		t.Fatalf("petal pixel = %v, want red", img.At(300, 100))
	}
	if alphaAt(t, img, 4, 4) == 0 {
		t.Fatalf("backdrop missing once open")
	}
}

type blueIcons struct{}

func (blueIcons) Load(string) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+2], img.Pix[i+3] = 255, 255
	}
	return img
}

func TestRenderFrameTurnsCenterIcon(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	opts := circlemenu.DefaultOptions()
	opts.NormalIcon = "menu"
	m := circlemenu.New(anim.NewTimeline(clk), nil, opts, circlemenu.WithIcons(blueIcons{}))

	blueAbove := func() bool {
		img, err := RenderFrame(m, FrameOptions{})
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		// 32 points above the center: outside the upright 50pt icon
		r, _, b, a := img.At(150, 118).RGBA()
		return a > 0 && b > r
	}
	if blueAbove() {
		t.Fatalf("upright icon drawn above its square")
	}
	m.Center().Normal.Rotation.Set(45)
	if !blueAbove() {
		t.Fatalf("icon corner missing after a 45 degree turn")
	}
}

func TestRenderNilMenu(t *testing.T) {
	if _, err := RenderFrame(nil, FrameOptions{}); err == nil {
		t.Fatalf("expected error for nil menu")
	}
}

func TestWriteFramePNGDecodes(t *testing.T) {
	m, _ := sampleMenu()
	var buf bytes.Buffer
	if err := WriteFramePNG(&buf, m, FrameOptions{Background: color.Black}); err != nil {
		t.Fatalf("WriteFramePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if alphaAt(t, img, 1, 1) != 0xffff {
		t.Fatalf("background not opaque")
	}
}

func TestExportFramesSamplesWholeRun(t *testing.T) {
	m, clk := sampleMenu()
	m.Toggle()
	dir := filepath.Join(t.TempDir(), "seq")
	paths, err := ExportFrames(dir, m, clk, SequenceOptions{Total: 500 * time.Millisecond, Every: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("ExportFrames: %v", err)
	}
	if len(paths) != 6 {
		t.Fatalf("frames = %d, want 6", len(paths))
	}
	if filepath.Base(paths[5]) != "frame-0005.png" {
		t.Fatalf("last frame = %s", paths[5])
	}
	for _, p := range paths {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("frame %s missing or empty: %v", p, err)
		}
	}
	if m.State() != circlemenu.Open {
		t.Fatalf("state after sequence = %s, want open", m.State())
	}
}
