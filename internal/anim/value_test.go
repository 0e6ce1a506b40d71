/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import (
	"math"
	"testing"
	"time"
)

func TestValueAnimateToReachesTarget(t *testing.T) {
	tl, clk := newTestTimeline()
	v := NewValue(0)
	v.AnimateTo(tl, 1, Spec{Duration: 300 * time.Millisecond, Easing: EaseInOut})
	Run(tl, clk, 150*time.Millisecond)
	if g := v.Get(); g <= 0 || g >= 1 {
		t.Fatalf("mid-animation value %v not between 0 and 1", g)
	}
	if !v.Animating() {
		t.Fatalf("value should report animating")
	}
	Run(tl, clk, 200*time.Millisecond)
	if v.Get() != 1 || v.Animating() {
		t.Fatalf("value = %v animating=%v, want 1/false", v.Get(), v.Animating())
	}
}

func TestLaterStartingAnimationWins(t *testing.T) {
	tl, clk := newTestTimeline()
	v := NewValue(1)
	// scheduled second but starts first, like a hide followed by a delayed restore
	v.AnimateTo(tl, 0.001, Spec{Duration: 300 * time.Millisecond})
	v.AnimateTo(tl, 1, Spec{Delay: 500 * time.Millisecond, Duration: 200 * time.Millisecond})
	Run(tl, clk, 400*time.Millisecond)
	if math.Abs(v.Get()-0.001) > 1e-9 {
		t.Fatalf("hide should have finished first, value = %v", v.Get())
	}
	Run(tl, clk, 400*time.Millisecond)
	if v.Get() != 1 {
		t.Fatalf("restore should own the value last, got %v", v.Get())
	}
}

func TestNewAnimationOverridesInFlight(t *testing.T) {
	tl, clk := newTestTimeline()
	v := NewValue(0)
	v.AnimateTo(tl, 1, Spec{Duration: time.Second})
	Run(tl, clk, 500*time.Millisecond)
	mid := v.Get()
	v.AnimateTo(tl, 0, Spec{Duration: 100 * time.Millisecond})
	Run(tl, clk, 2*time.Second)
	if v.Get() != 0 {
		t.Fatalf("override should end at 0, got %v (was %v mid-way)", v.Get(), mid)
	}
}

func TestAnimateFromToJumpsAtStart(t *testing.T) {
	tl, clk := newTestTimeline()
	v := NewValue(5)
	v.AnimateFromTo(tl, -180, 0, Spec{Delay: 100 * time.Millisecond, Duration: 100 * time.Millisecond})
	tl.Tick(clk.Advance(50 * time.Millisecond))
	if v.Get() != 5 {
		t.Fatalf("value changed before delay elapsed: %v", v.Get())
	}
	tl.Tick(clk.Advance(50 * time.Millisecond))
	if v.Get() != -180 {
		t.Fatalf("value should jump to from at start, got %v", v.Get())
	}
	Run(tl, clk, time.Second)
	if v.Get() != 0 {
		t.Fatalf("final = %v", v.Get())
	}
}

func TestSetDetachesRunningAnimation(t *testing.T) {
	tl, clk := newTestTimeline()
	v := NewValue(0)
	v.AnimateTo(tl, 1, Spec{Duration: time.Second})
	Run(tl, clk, 100*time.Millisecond)
	v.Set(0.9)
	Run(tl, clk, 2*time.Second)
	if v.Get() != 0.9 {
		t.Fatalf("Set should win over an older animation, got %v", v.Get())
	}
}

func TestSpringOvershootsAndSettles(t *testing.T) {
	s := Spring(0.3, 0)
	if s(0) != 0 {
		t.Fatalf("spring(0) = %v", s(0))
	}
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = math.Max(peak, s(float64(i)/100))
	}
	if peak <= 1 {
		t.Fatalf("underdamped spring should overshoot, peak = %v", peak)
	}
	if math.Abs(s(0.99)-1) > 0.02 {
		t.Fatalf("spring should have settled near 1 by the end, got %v", s(0.99))
	}
	if s(1) != 1 {
		t.Fatalf("spring(1) = %v", s(1))
	}

	crit := Spring(1, 0)
	for i := 0; i <= 100; i++ {
		if v := crit(float64(i) / 100); v > 1+1e-9 {
			t.Fatalf("critically damped spring overshot at %d: %v", i, v)
		}
	}
}

func TestEasingEndpointsAndByName(t *testing.T) {
	for name, e := range map[string]EasingFunc{"linear": Linear, "ease-in": EaseIn, "ease-out": EaseOut, "ease-in-out": EaseInOut, "cubic": EaseOutCubic} {
		if math.Abs(e(0)) > 1e-9 || math.Abs(e(1)-1) > 1e-9 {
			t.Fatalf("%s endpoints: %v %v", name, e(0), e(1))
		}
		if ByName(name) == nil {
			t.Fatalf("ByName(%q) returned nil", name)
		}
	}
	if ByName("wobble") != nil {
		t.Fatalf("unknown easing name should resolve to nil")
	}
}
