/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// AngleOf extracts the rotation of m in degrees, in the range [-180, 180].
// Any scale applied uniformly is ignored.
func AngleOf(m Affine2D) float64 {
	return Degrees(math.Atan2(m.B, m.A))
}

// Normalize wraps deg into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod can hand back 360-ε that rounds to 360
	if d >= 360 {
		d = 0
	}
	return d
}

// Unwrap maps a wrapped angle (as produced by AngleOf) into the cumulative
// rotation domain, choosing the representative closest to cumulative.
// Unwrap(350, -10) == 350, Unwrap(720, 0) == 720, Unwrap(700, -10) == 710.
func Unwrap(cumulative, wrapped float64) float64 {
	delta := Normalize(wrapped - cumulative)
	if delta > 180 {
		delta -= 360
	}
	return cumulative + delta
}

// PolarOffset returns the offset from a center for a point at distance along
// angle (degrees from up, clockwise).
func PolarOffset(angle, distance float64) Pt {
	rad := Radians(angle)
	return Pt{X: distance * math.Sin(rad), Y: -distance * math.Cos(rad)}
}

// StepAngles returns count angles evenly spaced around a full turn,
// starting at 0: i * 360/count.
func StepAngles(count int) []float64 {
	if count < 1 {
		return nil
	}
	step := 360.0 / float64(count)
	out := make([]float64, count)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}
