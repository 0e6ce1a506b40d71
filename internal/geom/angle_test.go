/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRadiansDegreesRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 45, 90, 180, -180, 270, 720} {
		if got := Degrees(Radians(d)); !approx(got, d) {
			t.Fatalf("Degrees(Radians(%v)) = %v", d, got)
		}
	}
	if !approx(Radians(180), math.Pi) {
		t.Fatalf("Radians(180) = %v, want pi", Radians(180))
	}
}

func TestAngleOfRotation(t *testing.T) {
	for _, d := range []float64{0, 30, 90, 179, -90, -179} {
		m := Rotate(Radians(d))
		if got := AngleOf(m); math.Abs(got-d) > 1e-9 {
			t.Fatalf("AngleOf(Rotate(%v)) = %v", d, got)
		}
	}
	// 270 comes back as -90; atan2 only reports [-180, 180]
	if got := AngleOf(Rotate(Radians(270))); math.Abs(got+90) > 1e-9 {
		t.Fatalf("AngleOf(Rotate(270)) = %v, want -90", got)
	}
	// uniform scale does not change the angle
	m := Rotate(Radians(60)).Mul(Scale(3, 3))
	if got := AngleOf(m); math.Abs(got-60) > 1e-9 {
		t.Fatalf("AngleOf(scaled) = %v, want 60", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[float64]float64{0: 0, 360: 0, 370: 10, -10: 350, -720: 0, 725: 5}
	for in, want := range cases {
		if got := Normalize(in); !approx(got, want) {
			t.Fatalf("Normalize(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestUnwrapKeepsCumulativeDomain(t *testing.T) {
	cases := []struct{ cum, wrapped, want float64 }{
		{350, -10, 350},
		{720, 0, 720},
		{700, -10, 710},
		{0, 179, 179},
		{360, -90, 270},
		{-30, 170, -190},
	}
	for _, c := range cases {
		if got := Unwrap(c.cum, c.wrapped); !approx(got, c.want) {
			t.Fatalf("Unwrap(%v, %v) = %v, want %v", c.cum, c.wrapped, got, c.want)
		}
	}
}

func TestPolarOffsetDirections(t *testing.T) {
	up := PolarOffset(0, 10)
	if !approx(up.X, 0) || !approx(up.Y, -10) {
		t.Fatalf("0° should be straight up, got %+v", up)
	}
	right := PolarOffset(90, 10)
	if !approx(right.X, 10) || math.Abs(right.Y) > 1e-9 {
		t.Fatalf("90° should be to the right, got %+v", right)
	}
}

func TestStepAnglesUniqueAndEven(t *testing.T) {
	for n := 1; n <= 12; n++ {
		a := StepAngles(n)
		if len(a) != n {
			t.Fatalf("StepAngles(%d) len = %d", n, len(a))
		}
		seen := map[float64]bool{}
		for i, v := range a {
			if !approx(v, float64(i)*360/float64(n)) {
				t.Fatalf("StepAngles(%d)[%d] = %v", n, i, v)
			}
			k := math.Round(Normalize(v) * 1e6)
			if seen[k] {
				t.Fatalf("StepAngles(%d) has duplicate angle %v mod 360", n, v)
			}
			seen[k] = true
		}
	}
	if StepAngles(0) != nil {
		t.Fatalf("StepAngles(0) should be nil")
	}
}

func TestRectCenterAndAffineApply(t *testing.T) {
	r := R(10, 20, 100, 50)
	if c := r.Center(); c != (Pt{X: 60, Y: 45}) {
		t.Fatalf("Center = %+v", c)
	}
	p := Translate(5, 5).Mul(Scale(2, 2)).Apply(Pt{X: 1, Y: 1})
	if p != (Pt{X: 7, Y: 7}) {
		t.Fatalf("Apply = %+v", p)
	}
}
