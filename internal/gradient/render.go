/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package gradient

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"circlemenu/internal/geom"
)

// BorderRect is one edge strip in logical units.
type BorderRect struct {
	Edge  Edge
	Rect  geom.Rect
	Color color.Color
}

// BorderWidth returns the edge strip width in logical units.
func (o *Overlay) BorderWidth() float64 {
	if o.drawsThinBorders {
		return 1 / o.deviceScale
	}
	return 1
}

// BorderRects lays out the configured edges. Top and bottom span the full
// width; left and right are shortened so they do not overlap them.
func (o *Overlay) BorderRects() []BorderRect {
	w, h := o.size.W, o.size.H
	bw := o.BorderWidth()
	var out []BorderRect
	if c := o.borders[Top]; c != nil {
		out = append(out, BorderRect{Edge: Top, Rect: geom.R(0, 0, w, bw), Color: c})
	}
	sideY := 0.0
	if o.borders[Top] != nil {
		sideY = bw
	}
	sideH := h - sideY
	if o.borders[Bottom] != nil {
		sideH -= bw
	}
	if c := o.borders[Right]; c != nil {
		out = append(out, BorderRect{Edge: Right, Rect: geom.R(w-bw, sideY, bw, sideH), Color: c})
	}
	if c := o.borders[Bottom]; c != nil {
		out = append(out, BorderRect{Edge: Bottom, Rect: geom.R(0, h-bw, w, bw), Color: c})
	}
	if c := o.borders[Left]; c != nil {
		out = append(out, BorderRect{Edge: Left, Rect: geom.R(0, sideY, bw, sideH), Color: c})
	}
	return out
}

// PixelSize is the raster size in device pixels.
func (o *Overlay) PixelSize() (int, int) {
	return int(math.Ceil(o.size.W * o.deviceScale)), int(math.Ceil(o.size.H * o.deviceScale))
}

// Image rasterizes the overlay at full opacity (Alpha is applied by the host
// when compositing). The result is cached until a visual input changes.
func (o *Overlay) Image() (image.Image, error) {
	if o.imgOK {
		return o.img, nil
	}
	w, h := o.PixelSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("gradient overlay: empty size %vx%v", o.size.W, o.size.H)
	}
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	if len(o.stops) > 0 {
		dc.SetFillBrush(o.brush(float64(w), float64(h)))
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill gradient: %w", err)
		}
	}
	s := o.deviceScale
	for _, b := range o.BorderRects() {
		dc.SetFillBrush(gg.Solid(ggColor(toNRGBA(b.Color))))
		dc.DrawRectangle(b.Rect.X*s, b.Rect.Y*s, b.Rect.W*s, b.Rect.H*s)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill border: %w", err)
		}
	}
	o.img = dc.Image()
	o.imgOK = true
	o.renders++
	return o.img, nil
}

func (o *Overlay) brush(w, h float64) gg.Brush {
	if o.mode == Radial {
		b := gg.NewRadialGradientBrush(w/2, h/2, 0, math.Min(w, h)/2)
		for _, st := range o.stops {
			b.AddColorStop(st.Offset, ggColor(st.Color))
		}
		return b
	}
	x1, y1 := 0.0, h
	if o.direction == Horizontal {
		x1, y1 = w, 0
	}
	b := gg.NewLinearGradientBrush(0, 0, x1, y1)
	for _, st := range o.stops {
		b.AddColorStop(st.Offset, ggColor(st.Color))
	}
	return b
}

func ggColor(c color.NRGBA) gg.RGBA {
	return gg.RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}
