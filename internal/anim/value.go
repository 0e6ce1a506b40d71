/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

// Value is an animatable scalar property such as an opacity, a scale or a
// rotation. At most one animation drives a Value at a time: whichever
// animation started most recently owns it, and updates from older animations
// are dropped. Animations target absolute end values, so a later animation
// overrides whatever was in flight.
//
// A Value is not safe for concurrent use; read and animate it from the
// goroutine that ticks its timeline.
type Value struct {
	v     float64
	owner *Animation
}

func NewValue(v float64) *Value { return &Value{v: v} }

func (v *Value) Get() float64 { return v.v }

// Set assigns x immediately and detaches any animation driving the value.
// Animations still waiting on their delay take over once they start.
func (v *Value) Set(x float64) {
	v.v = x
	v.owner = nil
}

// Animating reports whether an animation currently drives the value.
func (v *Value) Animating() bool { return v.owner != nil }

// AnimateTo animates from whatever the value holds when the animation starts
// to the absolute target to.
func (v *Value) AnimateTo(tl *Timeline, to float64, spec Spec) *Animation {
	return v.animate(tl, nil, to, spec)
}

// AnimateFromTo animates from an explicit start value to to. The value jumps
// to from when the animation starts, not when it is scheduled.
func (v *Value) AnimateFromTo(tl *Timeline, from, to float64, spec Spec) *Animation {
	return v.animate(tl, &from, to, spec)
}

func (v *Value) animate(tl *Timeline, from *float64, to float64, spec Spec) *Animation {
	var a *Animation
	var start float64
	onStart, update, onComplete := spec.OnStart, spec.Update, spec.OnComplete
	spec.OnStart = func() {
		v.owner = a
		if from != nil {
			start = *from
		} else {
			start = v.v
		}
		if onStart != nil {
			onStart()
		}
	}
	spec.Update = func(p float64) {
		if v.owner == a {
			if p == 1 {
				v.v = to
			} else {
				v.v = start + (to-start)*p
			}
		}
		if update != nil {
			update(p)
		}
	}
	spec.OnComplete = func() {
		if v.owner == a {
			v.owner = nil
		}
		if onComplete != nil {
			onComplete()
		}
	}
	a = tl.Animate(spec)
	return a
}
