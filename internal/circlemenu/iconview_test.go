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
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func solidIcon(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestIconRenderRotatesIntoDiagonalSquare(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	v := newIconView("share", solidIcon(10, 10, red), 1)

	img := v.Render(10)
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 15 {
		t.Fatalf("extent = %v, want 15x15", b)
	}
	if c := img.NRGBAAt(7, 7); c.A < 250 || c.R < 250 {
		t.Fatalf("center = %v, want red", c)
	}
	// above the upright square but inside the turned one
	if c := img.NRGBAAt(7, 1); c.A != 0 {
		t.Fatalf("upright icon reaches y=1: %v", c)
	}

	v.Rotation.Set(45)
	img = v.Render(10)
	if c := img.NRGBAAt(7, 1); c.A < 200 || c.R < 200 {
		t.Fatalf("turned icon missing its top corner: %v", c)
	}
	if c := img.NRGBAAt(1, 1); c.A != 0 {
		t.Fatalf("turned icon covers the frame corner: %v", c)
	}
}

func TestIconRenderQuarterTurnSwapsSides(t *testing.T) {
	// left half red, right half blue; a quarter turn clockwise puts red on top
	img := solidIcon(20, 20, color.NRGBA{B: 255, A: 255})
	draw.Draw(img, image.Rect(0, 0, 10, 20), &image.Uniform{C: color.NRGBA{R: 255, A: 255}}, image.Point{}, draw.Src)
	v := newIconView("split", img, 1)
	v.Rotation.Set(90)

	out := v.Render(20)
	mid := out.Bounds().Dx() / 2
	if c := out.NRGBAAt(mid, mid-5); c.R < 200 || c.B > 50 {
		t.Fatalf("above center = %v, want red", c)
	}
	if c := out.NRGBAAt(mid, mid+5); c.B < 200 || c.R > 50 {
		t.Fatalf("below center = %v, want blue", c)
	}
}

func TestIconRenderAbsent(t *testing.T) {
	var nilView *IconView
	if nilView.Render(10) != nil {
		t.Fatalf("nil view rendered")
	}
	if newIconView("none", nil, 1).Render(10) != nil {
		t.Fatalf("absent icon rendered")
	}
	if newIconView("x", solidIcon(4, 4, color.NRGBA{A: 255}), 1).Render(0) != nil {
		t.Fatalf("zero side rendered")
	}
}
