/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"circlemenu/internal/circlemenu"
)

// TrackMenu reports every state transition of m as an EventMenuState.
// Nothing is sent unless the client is enabled.
func (c *Client) TrackMenu(m *circlemenu.Menu) {
	items := m.Options().ItemCount
	m.OnStateChange(func(from, to circlemenu.State) {
		c.MenuState(from.String(), to.String(), items)
	})
}

// selectionDelegate forwards to next and reports completed selections.
type selectionDelegate struct {
	c    *Client
	next circlemenu.Delegate
}

// WrapDelegate returns a delegate that reports each completed selection as a
// EventPetalSelected before passing it on to next. next may be nil.
func (c *Client) WrapDelegate(next circlemenu.Delegate) circlemenu.Delegate {
	if next == nil {
		next = circlemenu.DelegateFuncs{}
	}
	return selectionDelegate{c: c, next: next}
}

func (d selectionDelegate) WillDisplay(m *circlemenu.Menu, p *circlemenu.Petal, index int) {
	d.next.WillDisplay(m, p, index)
}

func (d selectionDelegate) WillSelect(m *circlemenu.Menu, p *circlemenu.Petal, index int) {
	d.next.WillSelect(m, p, index)
}

func (d selectionDelegate) DidSelect(m *circlemenu.Menu, p *circlemenu.Petal, index int) {
	d.c.PetalSelected(index, m.Options().ItemCount)
	d.next.DidSelect(m, p, index)
}
