/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package circlemenu

import (
	"image/color"
	"math"
	"testing"
	"time"

	"circlemenu/internal/anim"
)

func TestRotateByAccumulates(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	p := newPetal(tl, 1, 120, nil)
	p.RotatedZ(120, false, 0)
	if p.Rotation.Get() != 120 {
		t.Fatalf("rotation = %v, want 120", p.Rotation.Get())
	}
	p.RotateBy(360, time.Second)
	anim.Run(tl, clk, time.Second)
	p.RotateBy(360, time.Second)
	anim.Run(tl, clk, time.Second)
	if p.Rotation.Get() != 840 || p.CurrentRotation() != 840 {
		t.Fatalf("rotation after two spins = %v, want 840", p.Rotation.Get())
	}
	// nearest representative, not a jump back to the first turn
	p.RotatedZ(100, true, 0)
	anim.Run(tl, clk, time.Second)
	if p.Rotation.Get() != 820 {
		t.Fatalf("RotatedZ(100) from 840 = %v, want 820", p.Rotation.Get())
	}
}

func TestRotatedZDelayedWithoutAnimation(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	p := newPetal(tl, 2, 240, nil)
	p.RotatedZ(90, false, 100*time.Millisecond)
	anim.Run(tl, clk, 50*time.Millisecond)
	if p.Rotation.Get() != 0 {
		t.Fatalf("rotation changed before delay: %v", p.Rotation.Get())
	}
	anim.Run(tl, clk, 60*time.Millisecond)
	if p.Rotation.Get() != 90 {
		t.Fatalf("rotation = %v, want 90", p.Rotation.Get())
	}
}

func TestShowThenHideAnimation(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	p := newPetal(tl, 0, 0, color.White)
	p.ShowAnimation(80, 200*time.Millisecond, 100*time.Millisecond)
	anim.Run(tl, clk, 350*time.Millisecond)
	if p.Distance.Get() != 80 || p.Alpha.Get() != 1 || p.Hidden() {
		t.Fatalf("after show: distance %v alpha %v", p.Distance.Get(), p.Alpha.Get())
	}
	done := 0
	p.HideAnimation(25, 100*time.Millisecond, 200*time.Millisecond, func() { done++ })
	anim.Run(tl, clk, 250*time.Millisecond)
	if !p.Hidden() || p.Alpha.Get() <= 0 || done != 0 {
		t.Fatalf("hide should still be running: alpha %v done %d", p.Alpha.Get(), done)
	}
	anim.Run(tl, clk, 100*time.Millisecond)
	if p.Alpha.Get() != 0 || p.Distance.Get() != 25 || done != 1 {
		t.Fatalf("after hide: alpha %v distance %v done %d", p.Alpha.Get(), p.Distance.Get(), done)
	}
	if o := p.Offset(); math.Abs(o.Y+25) > 1e-9 {
		t.Fatalf("hidden offset = %+v", o)
	}
}

func TestHideReplacesDelayedHide(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	p := newPetal(tl, 0, 0, color.White)
	p.ShowAnimation(80, 0, 0)
	anim.Run(tl, clk, anim.FrameInterval)
	first, second := 0, 0
	p.HideAnimation(25, 100*time.Millisecond, time.Second, func() { first++ })
	p.HideAnimation(10, 100*time.Millisecond, 0, func() { second++ })
	anim.Run(tl, clk, 2*time.Second)
	if first != 0 || second != 1 {
		t.Fatalf("done calls: first %d second %d", first, second)
	}
	if p.Distance.Get() != 10 || p.Alpha.Get() != 0 {
		t.Fatalf("distance %v alpha %v", p.Distance.Get(), p.Alpha.Get())
	}
}

func TestFillRevealDismissStopsSweep(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	r := newFillReveal(tl, 100, 50, -90, color.NRGBA{R: 200, A: 255})
	r.Fill(time.Second)
	r.Hide(500*time.Millisecond, time.Second)
	anim.Run(tl, clk, 300*time.Millisecond)
	swept := r.Progress.Get()
	if swept <= 0 || swept >= 1 {
		t.Fatalf("progress = %v mid-sweep", swept)
	}
	r.Dismiss(200 * time.Millisecond)
	anim.Run(tl, clk, 300*time.Millisecond)
	if !r.Finished() || r.Alpha.Get() != 0 {
		t.Fatalf("dismissed reveal: finished %t alpha %v", r.Finished(), r.Alpha.Get())
	}
	if r.Progress.Get() != swept {
		t.Fatalf("sweep continued after dismiss: %v -> %v", swept, r.Progress.Get())
	}
	if tl.Active() {
		t.Fatalf("delayed fade still scheduled")
	}
}

func TestFillRevealSweepsAndFades(t *testing.T) {
	clk := anim.NewManualClock(epoch)
	tl := anim.NewTimeline(clk)
	r := newFillReveal(tl, 100, 50, -90, color.NRGBA{R: 200, A: 255})
	if r.Extent() != 250 {
		t.Fatalf("extent = %v", r.Extent())
	}
	r.Fill(time.Second)
	r.Hide(500*time.Millisecond, time.Second)
	anim.Run(tl, clk, time.Second)
	if r.Progress.Get() != 1 || r.Alpha.Get() != 1 || r.Finished() {
		t.Fatalf("after fill: progress %v alpha %v finished %v", r.Progress.Get(), r.Alpha.Get(), r.Finished())
	}
	a0, a1 := r.SweepRadians()
	if math.Abs(a0+math.Pi/2) > 1e-9 || math.Abs(a1-a0-2*math.Pi) > 1e-9 {
		t.Fatalf("sweep = %v..%v", a0, a1)
	}
	anim.Run(tl, clk, 500*time.Millisecond)
	if r.Alpha.Get() != 0 || !r.Finished() {
		t.Fatalf("after hide: alpha %v finished %v", r.Alpha.Get(), r.Finished())
	}
}

func TestFillRevealRenderDrawsSweptArcOnly(t *testing.T) {
	r := newFillReveal(anim.NewTimeline(anim.NewManualClock(epoch)), 100, 50, -90, color.NRGBA{R: 200, A: 255})
	r.Progress.Set(0.25)
	img, err := r.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 250 {
		t.Fatalf("bounds = %v", b)
	}
	mid := 125.0
	// 45 degrees clockwise from up lies inside the first quarter
	x := int(mid + 100*math.Cos(-math.Pi/4))
	y := int(mid + 100*math.Sin(-math.Pi/4))
	if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
		t.Fatalf("swept part of the ring is empty at (%d,%d)", x, y)
	}
	if _, _, _, a := img.At(int(mid), int(mid+100)).RGBA(); a != 0 {
		t.Fatalf("unswept bottom of the ring is painted")
	}
	r.Alpha.Set(0)
	img, err = r.Render(1)
	if err != nil {
		t.Fatalf("Render hidden: %v", err)
	}
	if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
		t.Fatalf("transparent reveal painted pixels")
	}
}
