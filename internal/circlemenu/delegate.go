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
	"image"

	"circlemenu/internal/geom"
)

// Delegate receives menu notifications on the goroutine that ticks the
// timeline. index always equals petal.Tag().
type Delegate interface {
	// WillDisplay fires once per petal right before its show animation is scheduled.
	WillDisplay(m *Menu, p *Petal, index int)
	// WillSelect fires at the start of a selection, before anything animates.
	WillSelect(m *Menu, p *Petal, index int)
	// DidSelect fires once the center button starts to come back.
	DidSelect(m *Menu, p *Petal, index int)
}

// DelegateFuncs adapts optional callbacks to Delegate. Nil fields are no-ops.
type DelegateFuncs struct {
	OnWillDisplay func(m *Menu, p *Petal, index int)
	OnWillSelect  func(m *Menu, p *Petal, index int)
	OnDidSelect   func(m *Menu, p *Petal, index int)
}

func (d DelegateFuncs) WillDisplay(m *Menu, p *Petal, index int) {
	if d.OnWillDisplay != nil {
		d.OnWillDisplay(m, p, index)
	}
}

func (d DelegateFuncs) WillSelect(m *Menu, p *Petal, index int) {
	if d.OnWillSelect != nil {
		d.OnWillSelect(m, p, index)
	}
}

func (d DelegateFuncs) DidSelect(m *Menu, p *Petal, index int) {
	if d.OnDidSelect != nil {
		d.OnDidSelect(m, p, index)
	}
}

// Bounds reports the host container's bounds. The backdrop overlay covers them.
type Bounds interface {
	Bounds() geom.Rect
}

// BoundsFunc adapts a function to Bounds.
type BoundsFunc func() geom.Rect

func (f BoundsFunc) Bounds() geom.Rect { return f() }

// IconLoader resolves icon names. A nil image means the icon is absent.
type IconLoader interface {
	Load(name string) image.Image
}
