/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package circlemenu implements a radial menu: a center button that fans a
// ring of petals out around itself and, when a petal is picked, plays a
// spin, fill and collapse sequence before restoring the center button.
//
// The Menu only holds animatable state. A host renders it by reading the
// Values of the center, its icons, the petals, the fill reveals and the
// overlay after every Timeline tick, and forwards taps to Toggle and
// SelectPetal. All methods must be called from the goroutine that ticks the
// timeline.
package circlemenu

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sort"
	"strings"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/geom"
	"circlemenu/internal/gradient"
	applog "circlemenu/internal/log"
)

// State is the menu lifecycle phase.
type State int

const (
	Closed State = iota
	Opening
	Open
	Selecting
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Selecting:
		return "selecting"
	case Closing:
		return "closing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Center is the toggle button in the middle of the ring.
type Center struct {
	Scale    *anim.Value
	Alpha    *anim.Value
	Normal   *IconView
	Selected *IconView
	selected bool
}

// IsSelected reports whether the center shows its selected icon state.
func (c *Center) IsSelected() bool { return c.selected }

// Option customizes a Menu at construction.
type Option func(*Menu)

// WithDelegate sets the notification receiver.
func WithDelegate(d Delegate) Option {
	return func(m *Menu) {
		if d != nil {
			m.delegate = d
		}
	}
}

// WithIcons resolves Options.NormalIcon and Options.SelectedIcon through l.
func WithIcons(l IconLoader) Option { return func(m *Menu) { m.icons = l } }

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.log = l
		}
	}
}

// Menu is the radial menu controller.
type Menu struct {
	tl       *anim.Timeline
	opts     Options
	bounds   Bounds
	delegate Delegate
	icons    IconLoader
	log      *slog.Logger

	state  State
	center Center

	petals   []*Petal
	retiring []*Petal
	reveals  []*FillReveal
	zTop     int

	overlay         *gradient.Overlay
	overlaysCreated int

	settle    *anim.Task
	didSelect *anim.Task
	// delayed holds the selection animations a force hide must stop:
	// the center restore and the backdrop fade-out.
	delayed []*anim.Animation

	observers []func(from, to State)
}

// New creates a closed menu animated on tl. bounds supplies the area the
// backdrop overlay covers; nil sizes the overlay to the ring.
func New(tl *anim.Timeline, bounds Bounds, opts Options, options ...Option) *Menu {
	m := &Menu{
		tl:       tl,
		opts:     opts.normalized(),
		bounds:   bounds,
		delegate: DelegateFuncs{},
		log:      applog.WithComponent("circlemenu"),
	}
	for _, o := range options {
		o(m)
	}
	if m.bounds == nil {
		side := 2*m.opts.Distance + 2*m.opts.ButtonSize
		m.bounds = BoundsFunc(func() geom.Rect { return geom.R(0, 0, side, side) })
	}
	m.center = Center{
		Scale:    anim.NewValue(1),
		Alpha:    anim.NewValue(1),
		Normal:   newIconView(m.opts.NormalIcon, m.loadIcon(m.opts.NormalIcon), 1),
		Selected: newIconView(m.opts.SelectedIcon, m.loadIcon(m.opts.SelectedIcon), 0),
	}
	return m
}

func (m *Menu) loadIcon(name string) image.Image {
	if name == "" || m.icons == nil {
		return nil
	}
	img := m.icons.Load(name)
	if img == nil {
		m.log.Warn("icon unavailable, showing none", slog.String("icon", name))
	}
	return img
}

func (m *Menu) Timeline() *anim.Timeline { return m.tl }

// Options returns the normalized options.
func (m *Menu) Options() Options { return m.opts }

// Bounds is the host area the menu and its backdrop occupy.
func (m *Menu) Bounds() geom.Rect { return m.bounds.Bounds() }

func (m *Menu) State() State { return m.state }

func (m *Menu) Center() *Center { return &m.center }

// Petals returns the live petal set; nil while closed or once a hide began.
func (m *Menu) Petals() []*Petal { return m.petals }

// DrawPetals returns live and still-fading petals in stacking order.
func (m *Menu) DrawPetals() []*Petal {
	out := make([]*Petal, 0, len(m.petals)+len(m.retiring))
	out = append(out, m.retiring...)
	out = append(out, m.petals...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].z < out[j].z })
	return out
}

// Reveals returns the fill reveals that have not finished fading.
func (m *Menu) Reveals() []*FillReveal { return m.reveals }

// Overlay returns the backdrop, or nil before the first open.
func (m *Menu) Overlay() *gradient.Overlay { return m.overlay }

// OverlaysCreated counts backdrop constructions. It never exceeds one.
func (m *Menu) OverlaysCreated() int { return m.overlaysCreated }

// OnStateChange registers fn to run after every state transition.
func (m *Menu) OnStateChange(fn func(from, to State)) {
	if fn != nil {
		m.observers = append(m.observers, fn)
	}
}

// ButtonsShown reports whether every petal is fully opaque.
func (m *Menu) ButtonsShown() bool {
	if len(m.petals) == 0 {
		return false
	}
	for _, p := range m.petals {
		if p.Alpha.Get() < 1 {
			return false
		}
	}
	return true
}

// IsOpen is ButtonsShown.
func (m *Menu) IsOpen() bool { return m.ButtonsShown() }

// Toggle handles a tap on the center button. Closed opens and Open closes;
// taps while a transition runs are ignored.
func (m *Menu) Toggle() {
	switch m.state {
	case Closed:
		m.open()
	case Open:
		m.close()
	default:
		m.log.Debug("tap ignored", slog.String("state", m.state.String()))
	}
}

// SelectPetal handles a tap on the petal with the given tag. It only acts
// while the menu is open.
func (m *Menu) SelectPetal(tag int) {
	if m.state != Open {
		m.log.Debug("petal tap ignored", slog.Int("tag", tag), slog.String("state", m.state.String()))
		return
	}
	if tag < 0 || tag >= len(m.petals) {
		m.log.Debug("petal tap out of range", slog.Int("tag", tag))
		return
	}
	p := m.petals[tag]
	m.delegate.WillSelect(m, p, tag)
	m.setState(Selecting)

	d := m.opts.Duration
	p.RotateBy(360, d)
	m.zTop++
	p.z = m.zTop

	step := 360 / float64(len(m.petals))
	rev := newFillReveal(m.tl, m.opts.Distance, m.opts.ButtonSize, -90+float64(tag)*step, p.Color())
	rev.onDone = func() { m.dropReveal(rev) }
	m.reveals = append(m.reveals, rev)
	rev.Fill(d)
	rev.Hide(RevealFadeDuration, d)

	m.center.Scale.AnimateTo(m.tl, CenterHiddenScale, anim.Spec{Duration: CenterHideDuration, Easing: anim.EaseOut})
	m.hidePetals(0, d)
	m.showCenter(RestoreDuration, d)
	m.delayed = append(m.delayed, m.overlay.FadeOut(m.tl, 0, d))

	m.didSelect = m.tl.After(d, func() {
		m.didSelect = nil
		m.setState(Closing)
		m.delegate.DidSelect(m, p, tag)
	})
	m.settleAfter(d+IconSpinDuration, Closed)
}

// HideButtons force-closes the menu without selecting anything: petals fade
// over duration after hideDelay. Pending selection notifications are
// cancelled.
func (m *Menu) HideButtons(duration, hideDelay time.Duration) {
	if m.state == Closed || m.state == Closing {
		return
	}
	if m.state == Selecting {
		// the spinning petals were due to vanish at the end of the selection
		for _, p := range m.retiring {
			p.HideAnimation(m.opts.ButtonSize/2, duration, hideDelay, func() { m.retire(p) })
		}
		for _, r := range m.reveals {
			r.Dismiss(RevealFadeDuration)
		}
	}
	m.cancelPending()
	m.hidePetals(duration, hideDelay)
	m.overlay.FadeOut(m.tl, 0, 0)
	m.bounce()
	m.crossfade(false)
	m.setState(Closing)
	m.settleAfter(maxDuration(duration+hideDelay, BounceDuration, IconCrossfade, gradient.DefaultFade), Closed)
}

func (m *Menu) open() {
	m.setState(Opening)
	n := m.opts.ItemCount
	m.petals = make([]*Petal, 0, n)
	for i, a := range geom.StepAngles(n) {
		p := newPetal(m.tl, i, a, m.opts.petalColor(i))
		p.z = i
		m.petals = append(m.petals, p)
	}
	m.zTop = n - 1

	m.ensureOverlay().FadeIn(m.tl, 0)
	for i, p := range m.petals {
		delay := time.Duration(i) * m.opts.ShowDelay
		m.delegate.WillDisplay(m, p, i)
		p.RotatedZ(p.Angle(), false, delay)
		p.ShowAnimation(m.opts.Distance, m.opts.OpenDuration, delay)
	}
	m.bounce()
	m.crossfade(true)

	shown := m.opts.OpenDuration + time.Duration(n-1)*m.opts.ShowDelay
	m.settleAfter(maxDuration(shown, BounceDuration, IconCrossfade), Open)
}

func (m *Menu) close() {
	m.cancelPending()
	m.hidePetals(m.opts.CloseDuration, 0)
	m.overlay.FadeOut(m.tl, 0, 0)
	m.bounce()
	m.crossfade(false)
	m.setState(Closing)
	m.settleAfter(maxDuration(m.opts.CloseDuration, BounceDuration, IconCrossfade, gradient.DefaultFade), Closed)
}

// hidePetals drops the live set at once; the petals keep animating from the
// retiring list until their fade completes.
func (m *Menu) hidePetals(duration, delay time.Duration) {
	for _, p := range m.petals {
		p.HideAnimation(m.opts.ButtonSize/2, duration, delay, func() { m.retire(p) })
	}
	m.retiring = append(m.retiring, m.petals...)
	m.petals = nil
}

func (m *Menu) retire(p *Petal) {
	for i, q := range m.retiring {
		if q == p {
			m.retiring = append(m.retiring[:i], m.retiring[i+1:]...)
			return
		}
	}
}

func (m *Menu) dropReveal(r *FillReveal) {
	for i, q := range m.reveals {
		if q == r {
			m.reveals = append(m.reveals[:i], m.reveals[i+1:]...)
			return
		}
	}
}

func (m *Menu) ensureOverlay() *gradient.Overlay {
	size := m.bounds.Bounds().Size()
	if m.overlay != nil {
		m.overlay.Resize(size)
		return m.overlay
	}
	ov := gradient.New(size)
	style := gradient.DefaultStyle()
	if m.opts.Overlay != nil {
		style = *m.opts.Overlay
	}
	style.Apply(ov)
	m.overlay = ov
	m.overlaysCreated++
	m.log.Debug("overlay created", slog.Float64("w", size.W), slog.Float64("h", size.H))
	return ov
}

// bounce squeezes the center button and springs it back.
func (m *Menu) bounce() {
	m.center.Scale.Set(BounceScale)
	m.center.Scale.AnimateFromTo(m.tl, BounceScale, 1, anim.Spec{Duration: BounceDuration, Easing: anim.Spring(BounceDamping, 0)})
}

// crossfade swaps the center icons: the incoming one turns in from -180
// degrees and grows, the outgoing one turns away and shrinks. The two alphas
// always sum to one.
func (m *Menu) crossfade(selected bool) {
	in, out := m.center.Normal, m.center.Selected
	if selected {
		in, out = out, in
	}
	spec := anim.Spec{Duration: IconCrossfade, Easing: anim.EaseInOut}
	in.Rotation.AnimateFromTo(m.tl, -180, 0, spec)
	in.Scale.AnimateFromTo(m.tl, hiddenIconScale, 1, spec)
	in.Alpha.AnimateFromTo(m.tl, 0, 1, spec)
	out.Rotation.AnimateFromTo(m.tl, 0, 180, spec)
	out.Scale.AnimateFromTo(m.tl, 1, hiddenIconScale, spec)
	out.Alpha.AnimateFromTo(m.tl, 1, 0, spec)

	m.center.selected = selected
	if selected {
		m.center.Alpha.Set(OpenCenterAlpha)
	} else {
		m.center.Alpha.Set(1)
	}
}

// showCenter pops the center button back after delay and spins the normal
// icon home while the selected icon fades out.
func (m *Menu) showCenter(duration, delay time.Duration) {
	pop := anim.Spec{Delay: delay, Duration: duration, Easing: anim.Spring(RestoreDamping, 0)}
	fade := anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseInOut}
	spin := anim.Spec{Delay: delay, Duration: IconSpinDuration, Easing: anim.Spring(0.5, 0)}
	fade.OnStart = func() { m.center.selected = false }
	m.delayed = append(m.delayed[:0],
		m.center.Scale.AnimateTo(m.tl, 1, pop),
		m.center.Normal.Rotation.AnimateFromTo(m.tl, -180, 0, spin),
		m.center.Normal.Scale.AnimateTo(m.tl, 1, pop),
		m.center.Normal.Alpha.AnimateFromTo(m.tl, 0, 1, fade),
		m.center.Selected.Alpha.AnimateFromTo(m.tl, 1, 0, anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseInOut}),
		m.center.Alpha.AnimateTo(m.tl, 1, anim.Spec{Delay: delay, Duration: duration, Easing: anim.EaseInOut}),
	)
}

func (m *Menu) settleAfter(d time.Duration, to State) {
	m.settle.Cancel()
	m.settle = m.tl.After(d, func() {
		m.settle = nil
		m.setState(to)
	})
}

// cancelPending stops every delayed transition of the previous phase.
func (m *Menu) cancelPending() {
	m.settle.Cancel()
	m.settle = nil
	if m.didSelect.Pending() {
		m.log.Debug("pending selection notification cancelled")
	}
	m.didSelect.Cancel()
	m.didSelect = nil
	for _, a := range m.delayed {
		a.Cancel()
	}
	m.delayed = nil
}

func (m *Menu) setState(to State) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	m.log.DebugContext(applog.WithState(context.Background(), to.String()), "state change", slog.String("from", from.String()))
	for _, fn := range m.observers {
		fn(from, to)
	}
}

// Snapshot describes the current state in a few lines of text.
func (m *Menu) Snapshot() string {
	if m == nil {
		return "menu not created\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "state=%s items=%d shown=%t\n", m.state, m.opts.ItemCount, m.ButtonsShown())
	fmt.Fprintf(&b, "center scale=%.3f alpha=%.3f selected=%t normal=%.3f selectedIcon=%.3f\n",
		m.center.Scale.Get(), m.center.Alpha.Get(), m.center.selected,
		m.center.Normal.Alpha.Get(), m.center.Selected.Alpha.Get())
	for _, p := range m.DrawPetals() {
		state := "live"
		if p.Hidden() {
			state = "hiding"
		}
		fmt.Fprintf(&b, "petal %d %s angle=%.1f rotation=%.1f distance=%.1f alpha=%.3f z=%d\n",
			p.Tag(), state, p.Angle(), p.Rotation.Get(), p.Distance.Get(), p.Alpha.Get(), p.Z())
	}
	for _, r := range m.reveals {
		fmt.Fprintf(&b, "reveal start=%.1f progress=%.3f alpha=%.3f\n", r.StartAngle, r.Progress.Get(), r.Alpha.Get())
	}
	if m.overlay != nil {
		fmt.Fprintf(&b, "overlay alpha=%.3f dimmed=%t\n", m.overlay.Alpha.Get(), m.overlay.TintDimmed())
	} else {
		b.WriteString("overlay none\n")
	}
	return b.String()
}

func maxDuration(ds ...time.Duration) time.Duration {
	var m time.Duration
	for _, d := range ds {
		m = max(m, d)
	}
	return m
}
