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

	"circlemenu/internal/anim"
	"circlemenu/internal/geom"
)

// Petal is one selectable button orbiting the center. It sits at Distance
// from the center along its container's rotation, measured clockwise from up.
type Petal struct {
	tl    *anim.Timeline
	index int
	angle float64
	color color.Color
	z     int

	// rotation is the last requested container rotation in the cumulative
	// (non-wrapping) domain.
	rotation float64

	Distance *anim.Value
	Alpha    *anim.Value
	Rotation *anim.Value

	hidden  bool
	showing []*anim.Animation
	hiding  []*anim.Animation
}

func newPetal(tl *anim.Timeline, index int, angle float64, c color.Color) *Petal {
	return &Petal{
		tl:       tl,
		index:    index,
		angle:    angle,
		color:    c,
		Distance: anim.NewValue(0),
		Alpha:    anim.NewValue(0),
		Rotation: anim.NewValue(0),
	}
}

// Index is the petal's position in the ring.
func (p *Petal) Index() int { return p.index }

// Tag identifies the petal in delegate callbacks. It is fixed to Index.
func (p *Petal) Tag() int { return p.index }

// Angle is the resting angle, index * 360/count.
func (p *Petal) Angle() float64 { return p.angle }

func (p *Petal) Color() color.Color { return p.color }

// Z is the stacking order; higher draws on top.
func (p *Petal) Z() int { return p.z }

// CurrentRotation is the cumulative container rotation last requested.
func (p *Petal) CurrentRotation() float64 { return p.rotation }

// Offset is the petal center relative to the menu center right now.
func (p *Petal) Offset() geom.Pt {
	return geom.PolarOffset(p.Rotation.Get(), p.Distance.Get())
}

// Position is the petal center for a menu centered at c.
func (p *Petal) Position(c geom.Pt) geom.Pt { return c.Add(p.Offset()) }

// ShowAnimation moves the petal out from the center to distance while fading
// it in.
func (p *Petal) ShowAnimation(distance float64, duration, delay time.Duration) {
	p.hidden = false
	spec := anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseOut}
	p.showing = append(p.showing,
		p.Distance.AnimateFromTo(p.tl, 0, distance, spec),
		p.Alpha.AnimateFromTo(p.tl, 0, 1, spec))
}

// HideAnimation pulls the petal back to distance and fades it out after
// delay. done runs once the fade has finished. A show still waiting on its
// stagger delay is cancelled so it cannot bring the petal back, and a
// previous hide is replaced.
func (p *Petal) HideAnimation(distance float64, duration, delay time.Duration, done func()) {
	p.hidden = true
	for _, a := range append(p.showing, p.hiding...) {
		a.Cancel()
	}
	p.showing = nil
	spec := anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseIn}
	moving := p.Distance.AnimateTo(p.tl, distance, spec)
	spec.OnComplete = done
	p.hiding = []*anim.Animation{moving, p.Alpha.AnimateTo(p.tl, 0, spec)}
}

// Hidden reports whether a hide has been requested.
func (p *Petal) Hidden() bool { return p.hidden }

// RotatedZ turns the container to angle. The target is the representative of
// angle (mod 360) nearest the current rotation, so the petal never spins the
// long way round.
func (p *Petal) RotatedZ(angle float64, animated bool, delay time.Duration) {
	p.rotation = geom.Unwrap(p.rotation, angle)
	p.rotateTo(p.rotation, animated, PetalRotateDefault, delay)
}

// RotateBy adds delta to the cumulative rotation, animating over duration.
// Two RotateBy(360) calls leave the petal 720 degrees further on.
func (p *Petal) RotateBy(delta float64, duration time.Duration) {
	p.rotation += delta
	p.rotateTo(p.rotation, true, duration, 0)
}

func (p *Petal) rotateTo(target float64, animated bool, duration, delay time.Duration) {
	if !animated {
		if delay <= 0 {
			p.Rotation.Set(target)
			return
		}
		duration = 0
	}
	p.Rotation.AnimateTo(p.tl, target, anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseInOut})
}
