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
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gogpu/gg"

	"circlemenu/internal/anim"
	"circlemenu/internal/geom"
)

// FillReveal is the ring that sweeps around the center from the selected
// petal's direction and then fades away. It is one-shot.
type FillReveal struct {
	tl *anim.Timeline

	Radius      float64
	StrokeWidth float64
	// StartAngle is in degrees from the positive x axis, clockwise on screen;
	// -90 points up.
	StartAngle float64
	Color      color.Color

	// Progress is the swept fraction of the ring.
	Progress *anim.Value
	Alpha    *anim.Value

	fill     *anim.Animation
	fade     *anim.Animation
	finished bool
	onDone   func()
}

func newFillReveal(tl *anim.Timeline, radius, stroke, startAngle float64, c color.Color) *FillReveal {
	return &FillReveal{
		tl:          tl,
		Radius:      radius,
		StrokeWidth: stroke,
		StartAngle:  startAngle,
		Color:       c,
		Progress:    anim.NewValue(0),
		Alpha:       anim.NewValue(1),
	}
}

// Fill sweeps the ring from 0 to a full turn over duration.
func (r *FillReveal) Fill(duration time.Duration) {
	r.fill = r.Progress.AnimateFromTo(r.tl, 0, 1, anim.Spec{Duration: duration, Easing: anim.EaseInOut})
}

// Hide fades the ring out after delay and marks it finished. It replaces any
// fade scheduled before.
func (r *FillReveal) Hide(duration, delay time.Duration) {
	r.fade.Cancel()
	r.fade = r.Alpha.AnimateTo(r.tl, 0, anim.Spec{
		Delay:    delay,
		Duration: duration,
		Easing:   anim.EaseOut,
		OnComplete: func() {
			r.finished = true
			if r.onDone != nil {
				r.onDone()
			}
		},
	})
}

// Dismiss stops the sweep where it is and fades the ring out now.
func (r *FillReveal) Dismiss(duration time.Duration) {
	if r.finished {
		return
	}
	r.fill.Cancel()
	r.Hide(duration, 0)
}

// Finished reports whether the fade-out has completed.
func (r *FillReveal) Finished() bool { return r.finished }

// SweepRadians returns the arc currently drawn, in radians.
func (r *FillReveal) SweepRadians() (start, end float64) {
	start = geom.Radians(r.StartAngle)
	return start, start + 2*math.Pi*r.Progress.Get()
}

// Extent is the side of the square the ring fits in.
func (r *FillReveal) Extent() float64 { return 2*r.Radius + r.StrokeWidth }

// Render draws the ring into a square image of side Extent()*scale at the
// current progress, with the current alpha applied.
func (r *FillReveal) Render(scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}
	side := int(math.Ceil(r.Extent() * scale))
	if side <= 0 {
		return nil, fmt.Errorf("fill reveal: empty extent")
	}
	dc := gg.NewContext(side, side)
	defer func() { _ = dc.Close() }()

	p := r.Progress.Get()
	if p <= 0 || r.Alpha.Get() <= 0 {
		return dc.Image(), nil
	}
	c := color.NRGBAModel.Convert(r.Color).(color.NRGBA)
	dc.SetStrokeBrush(gg.Solid(gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255 * r.Alpha.Get(),
	}))
	dc.SetLineWidth(r.StrokeWidth * scale)
	mid := float64(side) / 2
	a0, a1 := r.SweepRadians()
	dc.DrawArc(mid, mid, r.Radius*scale, a0, a1)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("stroke fill reveal: %w", err)
	}
	return dc.Image(), nil
}
