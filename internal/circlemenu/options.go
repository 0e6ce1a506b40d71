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
	"time"

	"circlemenu/internal/gradient"
)

// Timings of the center button choreography.
const (
	DefaultDuration      = 2 * time.Second
	DefaultDistance      = 100.0
	DefaultOpenDuration  = 500 * time.Millisecond
	DefaultCloseDuration = 200 * time.Millisecond
	DefaultButtonSize    = 50.0

	IconCrossfade   = 300 * time.Millisecond
	BounceDuration  = 500 * time.Millisecond
	BounceScale     = 0.9
	BounceDamping   = 0.3
	OpenCenterAlpha = 0.3

	CenterHideDuration = 300 * time.Millisecond
	CenterHiddenScale  = 0.001
	RestoreDuration    = 525 * time.Millisecond
	RestoreDamping     = 0.78
	IconSpinDuration   = 1500 * time.Millisecond
	RevealFadeDuration = 500 * time.Millisecond
	PetalRotateDefault = 400 * time.Millisecond
	hiddenIconScale    = 0.2
)

// Options configure a Menu. Zero fields fall back to the defaults above.
type Options struct {
	ItemCount int
	// Duration is the selection animation length (spin, fill, hide delay).
	Duration time.Duration
	// Distance from the center to each petal's resting position.
	Distance float64
	// ShowDelay staggers petal reveals: petal i waits i*ShowDelay.
	ShowDelay     time.Duration
	OpenDuration  time.Duration
	CloseDuration time.Duration
	// ButtonSize is the center button diameter; petals and the fill ring use it too.
	ButtonSize float64

	NormalIcon   string
	SelectedIcon string
	// PetalColors are cycled by petal index. Empty means a neutral gray.
	PetalColors []color.Color
	// Overlay styles the backdrop when it is first created.
	Overlay *gradient.Style
}

// DefaultOptions mirrors the classic control: three petals, a two second
// selection, 100 units away from the center.
func DefaultOptions() Options {
	return Options{
		ItemCount:     3,
		Duration:      DefaultDuration,
		Distance:      DefaultDistance,
		OpenDuration:  DefaultOpenDuration,
		CloseDuration: DefaultCloseDuration,
		ButtonSize:    DefaultButtonSize,
	}
}

func (o Options) normalized() Options {
	if o.ItemCount < 1 {
		o.ItemCount = 1
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Distance <= 0 {
		o.Distance = DefaultDistance
	}
	if o.ShowDelay < 0 {
		o.ShowDelay = 0
	}
	if o.OpenDuration <= 0 {
		o.OpenDuration = DefaultOpenDuration
	}
	if o.CloseDuration <= 0 {
		o.CloseDuration = DefaultCloseDuration
	}
	if o.ButtonSize <= 0 {
		o.ButtonSize = DefaultButtonSize
	}
	o.PetalColors = append([]color.Color(nil), o.PetalColors...)
	return o
}

var neutralPetal = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

func (o Options) petalColor(i int) color.Color {
	if len(o.PetalColors) == 0 {
		return neutralPetal
	}
	return o.PetalColors[i%len(o.PetalColors)]
}
