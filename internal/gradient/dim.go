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
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Desaturate keeps hue, brightness (HSV value) and alpha of c and drops its
// saturation to zero.
func Desaturate(c color.Color) color.Color {
	n := toNRGBA(c)
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, _, v := cf.Hsv()
	r, g, b := colorful.Hsv(h, 0, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: n.A}
}

// HSBA builds a color from hue in degrees and saturation, brightness and
// alpha in [0, 1].
func HSBA(hue, sat, bright, alpha float64) color.NRGBA {
	r, g, b := colorful.Hsv(hue, sat, bright).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// DefaultColors are the two warm stops the menu backdrop uses out of the box.
func DefaultColors() []color.Color {
	return []color.Color{
		HSBA(11, 0.73, 0.83, 0.7),
		HSBA(337, 0.69, 0.65, 0.7),
	}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa". The alpha suffix is optional.
func ParseHex(s string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := colorful.Hex("#" + s[7:9] + s[7:9] + s[7:9])
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha, _, _ = a.RGB255()
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
