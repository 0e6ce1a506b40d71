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
	"math"

	"golang.org/x/image/draw"

	"circlemenu/internal/anim"
	"circlemenu/internal/geom"
)

// IconView is one of the two icons stacked on the center button.
type IconView struct {
	Name     string
	Image    image.Image
	Alpha    *anim.Value
	Scale    *anim.Value
	Rotation *anim.Value // degrees
}

// Present reports whether the icon resolved to an image.
func (v *IconView) Present() bool { return v != nil && v.Image != nil }

func newIconView(name string, img image.Image, alpha float64) *IconView {
	return &IconView{
		Name:     name,
		Image:    img,
		Alpha:    anim.NewValue(alpha),
		Scale:    anim.NewValue(1),
		Rotation: anim.NewValue(0),
	}
}

// RotatedExtent is the side of the square Render draws into for an icon
// drawn side units wide: the diagonal, so no rotation clips it.
func RotatedExtent(side float64) float64 { return side * math.Sqrt2 }

// Render draws the icon stretched to side x side pixels and turned by its
// current Rotation about the center of a square of RotatedExtent(side)
// pixels. Alpha and Scale are left to the caller. Nil when absent.
func (v *IconView) Render(side float64) *image.NRGBA {
	if !v.Present() || side <= 0 {
		return nil
	}
	ext := int(math.Ceil(RotatedExtent(side)))
	dst := image.NewNRGBA(image.Rect(0, 0, ext, ext))
	sb := v.Image.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 {
		return dst
	}
	half := float64(ext) / 2
	m := geom.Translate(half, half).
		Mul(geom.Rotate(geom.Radians(v.Rotation.Get()))).
		Mul(geom.Scale(side/sw, side/sh)).
		Mul(geom.Translate(-sw/2-float64(sb.Min.X), -sh/2-float64(sb.Min.Y)))
	draw.CatmullRom.Transform(dst, m.Aff3(), v.Image, sb, draw.Over, nil)
	return dst
}
