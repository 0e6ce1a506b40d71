/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"fmt"
	"image/color"
	"time"

	"circlemenu/internal/circlemenu"
	"circlemenu/internal/gradient"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// MenuOptions converts the menu section into circlemenu options. The overlay
// section is attached as the backdrop style.
func (c AppConfig) MenuOptions() (circlemenu.Options, error) {
	m := c.Menu
	colors, err := parseColors(m.PetalColors)
	if err != nil {
		return circlemenu.Options{}, fmt.Errorf("menu.petal_colors: %w", err)
	}
	style, err := c.OverlayStyle()
	if err != nil {
		return circlemenu.Options{}, err
	}
	return circlemenu.Options{
		ItemCount:     m.ItemCount,
		Duration:      ms(m.DurationMs),
		Distance:      m.Distance,
		ShowDelay:     ms(m.ShowDelayMs),
		OpenDuration:  ms(m.OpenDurationMs),
		CloseDuration: ms(m.CloseDurationMs),
		ButtonSize:    m.ButtonSize,
		NormalIcon:    m.NormalIcon,
		SelectedIcon:  m.SelectedIcon,
		PetalColors:   colors,
		Overlay:       &style,
	}, nil
}

// OverlayStyle converts the overlay section. Empty colors mean the default
// gradient.
func (c AppConfig) OverlayStyle() (gradient.Style, error) {
	o := c.Overlay
	s := gradient.DefaultStyle()
	if len(o.Colors) > 0 {
		cs, err := parseColors(o.Colors)
		if err != nil {
			return s, fmt.Errorf("overlay.colors: %w", err)
		}
		s.Colors = cs
	}
	dimmed, err := parseColors(o.DimmedColors)
	if err != nil {
		return s, fmt.Errorf("overlay.dimmed_colors: %w", err)
	}
	s.DimmedColors = dimmed
	s.Locations = append([]float64(nil), o.Locations...)
	switch o.Mode {
	case "", "linear":
		s.Mode = gradient.Linear
	case "radial":
		s.Mode = gradient.Radial
	default:
		return s, fmt.Errorf("overlay.mode: unknown mode %q", o.Mode)
	}
	switch o.Direction {
	case "", "vertical":
		s.Direction = gradient.Vertical
	case "horizontal":
		s.Direction = gradient.Horizontal
	default:
		return s, fmt.Errorf("overlay.direction: unknown direction %q", o.Direction)
	}
	s.AutomaticallyDims = o.AutomaticallyDims
	s.DrawsThinBorders = o.DrawsThinBorders
	edges := [4]string{o.BorderColors.Top, o.BorderColors.Right, o.BorderColors.Bottom, o.BorderColors.Left}
	for i, h := range edges {
		if h == "" {
			continue
		}
		c, err := gradient.ParseHex(h)
		if err != nil {
			return s, fmt.Errorf("overlay.border_colors: %w", err)
		}
		s.Borders[i] = c
	}
	return s, nil
}

func parseColors(hex []string) ([]color.Color, error) {
	if len(hex) == 0 {
		return nil, nil
	}
	out := make([]color.Color, 0, len(hex))
	for _, h := range hex {
		c, err := gradient.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", h, err)
		}
		out = append(out, c)
	}
	return out, nil
}
