/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package gradient implements the tinted backdrop shown behind an open menu:
// a linear or radial multi-stop gradient with optional hairline borders that
// desaturates itself while the host signals a dimmed tint state.
//
// The resolved stops are rebuilt only when colors, dimmed colors, locations or
// the tint state change; the rasterized image is cached until any visual input
// (including size) changes.
package gradient

import (
	"image"
	"image/color"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/geom"
)

// Mode selects the gradient geometry.
type Mode int

const (
	Linear Mode = iota
	Radial
)

func (m Mode) String() string {
	if m == Radial {
		return "radial"
	}
	return "linear"
}

// Direction orients a linear gradient.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Edge names one side of the overlay for border drawing.
type Edge int

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// DefaultFade is the duration used by FadeIn/FadeOut when d <= 0.
const DefaultFade = 300 * time.Millisecond

// Stop is a resolved gradient stop with a straight (non-premultiplied) color.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Overlay is the backdrop model. The zero value is not usable; call New.
type Overlay struct {
	colors       []color.Color
	dimmedColors []color.Color
	locations    []float64

	mode      Mode
	direction Direction

	automaticallyDims bool
	dimmed            bool

	drawsThinBorders bool
	deviceScale      float64
	borders          [4]color.Color

	size geom.Size

	// Alpha is the overlay opacity, animated by FadeIn/FadeOut.
	Alpha *anim.Value

	stops    []Stop
	rebuilds int

	img     image.Image
	imgOK   bool
	renders int
}

// New creates a transparent overlay covering size with no colors.
func New(size geom.Size) *Overlay {
	return &Overlay{
		size:              size,
		automaticallyDims: true,
		drawsThinBorders:  true,
		deviceScale:       1,
		Alpha:             anim.NewValue(0),
	}
}

// SetColors sets the gradient colors. With no colors nothing is drawn.
func (o *Overlay) SetColors(cs ...color.Color) {
	o.colors = append([]color.Color(nil), cs...)
	o.updateGradient()
}

func (o *Overlay) Colors() []color.Color { return append([]color.Color(nil), o.colors...) }

// SetDimmedColors sets explicit colors for the dimmed tint state. They reuse
// the regular locations; pass nil to fall back to automatic dimming.
func (o *Overlay) SetDimmedColors(cs ...color.Color) {
	if len(cs) == 0 {
		o.dimmedColors = nil
	} else {
		o.dimmedColors = append([]color.Color(nil), cs...)
	}
	o.updateGradient()
}

// SetLocations sets stop offsets in [0, 1], monotonically increasing. nil, or a
// slice whose length does not match the colors, spreads stops uniformly.
func (o *Overlay) SetLocations(locs ...float64) {
	if len(locs) == 0 {
		o.locations = nil
	} else {
		o.locations = append([]float64(nil), locs...)
	}
	o.updateGradient()
}

// SetAutomaticallyDims controls whether the dimmed tint state desaturates
// the colors when no explicit dimmed colors are set.
func (o *Overlay) SetAutomaticallyDims(on bool) {
	o.automaticallyDims = on
	o.updateGradient()
}

// SetTintDimmed is called by the host when its tint adjustment changes, for
// example while a modal alert is shown.
func (o *Overlay) SetTintDimmed(dimmed bool) {
	if o.dimmed == dimmed {
		return
	}
	o.dimmed = dimmed
	if o.automaticallyDims || o.dimmedColors != nil {
		o.updateGradient()
	}
}

func (o *Overlay) TintDimmed() bool { return o.dimmed }

func (o *Overlay) SetMode(m Mode) {
	o.mode = m
	o.invalidate()
}

func (o *Overlay) Mode() Mode { return o.mode }

func (o *Overlay) SetDirection(d Direction) {
	o.direction = d
	o.invalidate()
}

func (o *Overlay) Direction() Direction { return o.direction }

// SetDrawsThinBorders chooses between one device pixel (true) and one
// logical unit (false) wide borders.
func (o *Overlay) SetDrawsThinBorders(thin bool) {
	o.drawsThinBorders = thin
	o.invalidate()
}

// SetDeviceScale sets the number of device pixels per logical unit.
func (o *Overlay) SetDeviceScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale == o.deviceScale {
		return
	}
	o.deviceScale = scale
	o.invalidate()
}

func (o *Overlay) DeviceScale() float64 { return o.deviceScale }

// SetBorderColor sets or (with nil) clears the border on one edge.
func (o *Overlay) SetBorderColor(e Edge, c color.Color) {
	if e < Top || e > Left {
		return
	}
	o.borders[e] = c
	o.invalidate()
}

func (o *Overlay) BorderColor(e Edge) color.Color {
	if e < Top || e > Left {
		return nil
	}
	return o.borders[e]
}

// Resize is the layout hook; the host calls it when its bounds change.
func (o *Overlay) Resize(size geom.Size) {
	if o.size == size {
		return
	}
	o.size = size
	o.invalidate()
}

func (o *Overlay) Size() geom.Size { return o.size }

// Stops returns the currently resolved stops. The slice must not be modified.
func (o *Overlay) Stops() []Stop { return o.stops }

// Rebuilds counts how many times the stops were recomputed.
func (o *Overlay) Rebuilds() int { return o.rebuilds }

// Renders counts how many times the image was rasterized.
func (o *Overlay) Renders() int { return o.renders }

// FadeIn animates Alpha to 1.
func (o *Overlay) FadeIn(tl *anim.Timeline, d time.Duration) *anim.Animation {
	if d <= 0 {
		d = DefaultFade
	}
	return o.Alpha.AnimateTo(tl, 1, anim.Spec{Duration: d, Easing: anim.EaseInOut})
}

// FadeOut animates Alpha to 0 after delay.
func (o *Overlay) FadeOut(tl *anim.Timeline, d, delay time.Duration) *anim.Animation {
	if d <= 0 {
		d = DefaultFade
	}
	return o.Alpha.AnimateTo(tl, 0, anim.Spec{Delay: delay, Duration: d, Easing: anim.EaseInOut})
}

// Visible reports whether any part of the overlay would show.
func (o *Overlay) Visible() bool { return o.Alpha.Get() > 0 }

func (o *Overlay) updateGradient() {
	o.rebuilds++
	o.invalidate()
	cs := o.gradientColors()
	if len(cs) == 0 {
		o.stops = nil
		return
	}
	locs := o.locations
	if len(locs) != len(cs) {
		locs = uniform(len(cs))
	}
	stops := make([]Stop, len(cs))
	for i, c := range cs {
		stops[i] = Stop{Offset: clamp01(locs[i]), Color: toNRGBA(c)}
	}
	o.stops = stops
}

func (o *Overlay) gradientColors() []color.Color {
	if o.dimmed {
		if o.dimmedColors != nil {
			return o.dimmedColors
		}
		if o.automaticallyDims && o.colors != nil {
			out := make([]color.Color, len(o.colors))
			for i, c := range o.colors {
				out[i] = Desaturate(c)
			}
			return out
		}
	}
	return o.colors
}

func (o *Overlay) invalidate() {
	o.imgOK = false
	o.img = nil
}

func uniform(n int) []float64 {
	if n == 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
