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

import "image/color"

// Style bundles every configurable overlay attribute so callers can describe
// an overlay before it exists.
type Style struct {
	Colors            []color.Color
	DimmedColors      []color.Color
	Locations         []float64
	Mode              Mode
	Direction         Direction
	AutomaticallyDims bool
	DrawsThinBorders  bool
	Borders           [4]color.Color
}

// DefaultStyle is the menu backdrop used when nothing is configured.
func DefaultStyle() Style {
	return Style{
		Colors:            DefaultColors(),
		AutomaticallyDims: true,
		DrawsThinBorders:  true,
	}
}

// Apply copies s onto o.
func (s Style) Apply(o *Overlay) {
	o.SetMode(s.Mode)
	o.SetDirection(s.Direction)
	o.SetDrawsThinBorders(s.DrawsThinBorders)
	for e := Top; e <= Left; e++ {
		o.SetBorderColor(e, s.Borders[e])
	}
	o.automaticallyDims = s.AutomaticallyDims
	o.locations = append([]float64(nil), s.Locations...)
	o.dimmedColors = nil
	if len(s.DimmedColors) > 0 {
		o.dimmedColors = append([]color.Color(nil), s.DimmedColors...)
	}
	o.SetColors(s.Colors...)
}
