/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import "math"

// EasingFunc maps time progress (0-1) to value progress.
// Value progress may leave [0, 1] for overshooting curves such as springs.
type EasingFunc func(t float64) float64

var (
	Linear EasingFunc = func(t float64) float64 { return t }

	EaseIn EasingFunc = func(t float64) float64 { return t * t }

	EaseOut EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOut is the cubic in-out curve used for cross-fades and icon spins.
	EaseInOut EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}

	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}
)

// springSettle is the decay exponent reached at t=1; e^-6 leaves about
// a quarter of a percent of the initial displacement.
const springSettle = 6.0

// Spring returns a damped-oscillation curve. damping is the damping ratio:
// below 1 the value overshoots and rings, at or above 1 it settles without
// overshoot. velocity is the initial velocity in units of the total change
// per duration. The curve is scaled so it has settled by t=1.
func Spring(damping, velocity float64) EasingFunc {
	if damping <= 0 {
		damping = 0.01
	}
	if damping >= 1 {
		w := springSettle
		return func(t float64) float64 {
			if t >= 1 {
				return 1
			}
			return 1 - math.Exp(-w*t)*(1+(w-velocity)*t)
		}
	}
	w := springSettle / damping
	decay := damping * w
	wd := w * math.Sqrt(1-damping*damping)
	k := (decay - velocity) / wd
	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 1 - math.Exp(-decay*t)*(math.Cos(wd*t)+k*math.Sin(wd*t))
	}
}

// ByName resolves an easing name as used in configuration files.
// Unknown names return nil.
func ByName(name string) EasingFunc {
	switch name {
	case "linear":
		return Linear
	case "ease-in":
		return EaseIn
	case "ease-out":
		return EaseOut
	case "ease", "ease-in-out":
		return EaseInOut
	case "cubic":
		return EaseOutCubic
	default:
		return nil
	}
}
