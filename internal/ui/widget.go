//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"circlemenu/internal/anim"
	"circlemenu/internal/circlemenu"
	"circlemenu/internal/geom"
	applog "circlemenu/internal/log"
)

// CircleMenu hosts a circlemenu.Menu as a fyne widget. Taps on the center
// toggle the menu, taps on a petal select it, and a frame animation ticks the
// menu timeline while anything is scheduled.
type CircleMenu struct {
	widget.BaseWidget

	tl    *anim.Timeline
	menu  *circlemenu.Menu
	log   *slog.Logger
	frame *fyne.Animation
	// drive is false in tests, which step the timeline by hand.
	drive   bool
	running bool
	dimmed  bool
}

// NewCircleMenu creates the widget on the wall clock.
func NewCircleMenu(opts circlemenu.Options, options ...circlemenu.Option) *CircleMenu {
	return newCircleMenu(anim.SystemClock{}, true, opts, options...)
}

func newCircleMenu(clock anim.Clock, drive bool, opts circlemenu.Options, options ...circlemenu.Option) *CircleMenu {
	c := &CircleMenu{
		tl:    anim.NewTimeline(clock),
		log:   applog.WithComponent("ui"),
		drive: drive,
	}
	c.menu = circlemenu.New(c.tl, circlemenu.BoundsFunc(c.bounds), opts, options...)
	c.frame = fyne.NewAnimation(time.Second, func(float32) { c.Step() })
	c.frame.Curve = fyne.AnimationLinear
	c.frame.RepeatCount = fyne.AnimationRepeatForever
	c.tl.OnActiveChange(func(active bool) {
		if active {
			c.startFrames()
		}
	})
	c.ExtendBaseWidget(c)
	return c
}

// Menu returns the hosted controller.
func (c *CircleMenu) Menu() *circlemenu.Menu { return c.menu }

// Step advances the timeline to the clock's current time and redraws.
func (c *CircleMenu) Step() {
	if !c.tl.Tick(c.tl.Now()) {
		c.stopFrames()
	}
	c.Refresh()
}

// SetDimmed switches the backdrop to its dimmed colors.
func (c *CircleMenu) SetDimmed(dimmed bool) {
	c.dimmed = dimmed
	if ov := c.menu.Overlay(); ov != nil {
		ov.SetTintDimmed(dimmed)
	}
	c.Refresh()
}

func (c *CircleMenu) startFrames() {
	if !c.drive || c.running {
		return
	}
	c.running = true
	c.frame.Start()
}

func (c *CircleMenu) stopFrames() {
	if !c.running {
		return
	}
	c.running = false
	c.frame.Stop()
}

func (c *CircleMenu) bounds() geom.Rect {
	sz := c.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		sz = c.MinSize()
	}
	return geom.R(0, 0, float64(sz.Width), float64(sz.Height))
}

// MinSize fits the open ring.
func (c *CircleMenu) MinSize() fyne.Size {
	o := c.menu.Options()
	side := float32(2*o.Distance + 2*o.ButtonSize)
	return fyne.NewSize(side, side)
}

// Tapped routes a tap to the center button, a petal, or the backdrop.
func (c *CircleMenu) Tapped(e *fyne.PointEvent) {
	pt := geom.Pt{X: float64(e.Position.X), Y: float64(e.Position.Y)}
	ctr := c.bounds().Center()
	radius := c.menu.Options().ButtonSize / 2
	switch {
	case distance(pt, ctr) <= radius:
		c.menu.Toggle()
	case c.menu.State() == circlemenu.Open:
		if p := c.petalAt(pt, ctr, radius); p != nil {
			c.menu.SelectPetal(p.Tag())
		} else {
			c.menu.Toggle()
		}
	default:
		c.log.Debug("tap outside menu", slog.String("state", c.menu.State().String()))
	}
	if ov := c.menu.Overlay(); ov != nil {
		ov.SetTintDimmed(c.dimmed)
	}
	c.Refresh()
}

// petalAt hit-tests from the top of the stacking order down.
func (c *CircleMenu) petalAt(pt, ctr geom.Pt, radius float64) *circlemenu.Petal {
	petals := c.menu.DrawPetals()
	for i := len(petals) - 1; i >= 0; i-- {
		p := petals[i]
		if p.Hidden() || p.Alpha.Get() <= 0 {
			continue
		}
		if distance(pt, p.Position(ctr)) <= radius {
			return p
		}
	}
	return nil
}

func distance(a, b geom.Pt) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func (c *CircleMenu) CreateRenderer() fyne.WidgetRenderer {
	r := &circleMenuRenderer{
		cm:      c,
		overlay: &canvas.Image{FillMode: canvas.ImageFillStretch},
		reveal:  &canvas.Image{FillMode: canvas.ImageFillStretch},
		center:  canvas.NewCircle(color.White),
	}
	for i := range r.icons {
		r.icons[i] = &canvas.Image{FillMode: canvas.ImageFillContain}
	}
	r.rebuild()
	return r
}

// circleMenuRenderer keeps one canvas object per visual and repositions
// them from the menu's animated values on every refresh.
type circleMenuRenderer struct {
	cm      *CircleMenu
	overlay *canvas.Image
	reveal  *canvas.Image
	petals  []*canvas.Circle
	center  *canvas.Circle
	icons   [2]*canvas.Image
	objects []fyne.CanvasObject

	iconCache [2]renderedIcon
}

type renderedIcon struct {
	src      image.Image
	rotation float64
	px       float64
	img      image.Image
}

func (r *circleMenuRenderer) Destroy()                     { r.cm.stopFrames() }
func (r *circleMenuRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *circleMenuRenderer) MinSize() fyne.Size           { return r.cm.MinSize() }

func (r *circleMenuRenderer) Refresh() {
	if len(r.petals) != len(r.cm.menu.DrawPetals()) {
		r.rebuild()
	}
	r.Layout(r.cm.Size())
	canvas.Refresh(r.cm)
}

// rebuild sizes the petal circles to the current draw list. Draw order is
// backdrop, reveal ring, petals, center, icons.
func (r *circleMenuRenderer) rebuild() {
	n := len(r.cm.menu.DrawPetals())
	for len(r.petals) < n {
		r.petals = append(r.petals, canvas.NewCircle(color.Transparent))
	}
	r.petals = r.petals[:n]
	objs := []fyne.CanvasObject{r.overlay, r.reveal}
	for _, p := range r.petals {
		objs = append(objs, p)
	}
	objs = append(objs, r.center, r.icons[0], r.icons[1])
	r.objects = objs
}

func (r *circleMenuRenderer) Layout(size fyne.Size) {
	m := r.cm.menu
	ctr := geom.Pt{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	bs := m.Options().ButtonSize

	r.layoutOverlay(size)
	r.layoutReveal(ctr)

	for i, p := range m.DrawPetals() {
		if i >= len(r.petals) {
			break
		}
		circ := r.petals[i]
		circ.FillColor = withAlpha(p.Color(), p.Alpha.Get())
		pos := p.Position(ctr)
		circ.Resize(fyne.NewSize(float32(bs), float32(bs)))
		circ.Move(fyne.NewPos(float32(pos.X-bs/2), float32(pos.Y-bs/2)))
		circ.Refresh()
	}

	center := m.Center()
	side := bs * center.Scale.Get()
	r.center.FillColor = withAlpha(color.White, center.Alpha.Get())
	r.center.Resize(fyne.NewSize(float32(side), float32(side)))
	r.center.Move(fyne.NewPos(float32(ctr.X-side/2), float32(ctr.Y-side/2)))
	r.center.Refresh()

	for i, v := range []*circlemenu.IconView{center.Normal, center.Selected} {
		img := r.icons[i]
		a := center.Alpha.Get() * v.Alpha.Get()
		if !v.Present() || a <= 0 {
			img.Hide()
			continue
		}
		s := side * v.Scale.Get()
		if s <= 0 {
			img.Hide()
			continue
		}
		img.Image = r.rotatedIcon(i, v, s)
		ext := circlemenu.RotatedExtent(s)
		img.Translucency = 1 - a
		img.Resize(fyne.NewSize(float32(ext), float32(ext)))
		img.Move(fyne.NewPos(float32(ctr.X-ext/2), float32(ctr.Y-ext/2)))
		img.Show()
		img.Refresh()
	}
}

// rotatedIcon renders v at its current rotation, reusing the previous frame
// while neither the rotation nor the pixel size changed.
func (r *circleMenuRenderer) rotatedIcon(i int, v *circlemenu.IconView, side float64) image.Image {
	px := math.Round(side * r.deviceScale())
	c := &r.iconCache[i]
	if c.img != nil && c.src == v.Image && c.rotation == v.Rotation.Get() && c.px == px {
		return c.img
	}
	out := v.Render(px)
	if out == nil {
		*c = renderedIcon{}
		return nil
	}
	*c = renderedIcon{src: v.Image, rotation: v.Rotation.Get(), px: px, img: out}
	return out
}

func (r *circleMenuRenderer) layoutOverlay(size fyne.Size) {
	ov := r.cm.menu.Overlay()
	if ov == nil || !ov.Visible() {
		r.overlay.Hide()
		return
	}
	ov.SetDeviceScale(r.deviceScale())
	img, err := ov.Image()
	if err != nil {
		r.cm.log.Warn("render overlay", slog.Any("err", err))
		r.overlay.Hide()
		return
	}
	r.overlay.Image = img
	r.overlay.Translucency = 1 - ov.Alpha.Get()
	r.overlay.Resize(size)
	r.overlay.Move(fyne.NewPos(0, 0))
	r.overlay.Show()
	r.overlay.Refresh()
}

func (r *circleMenuRenderer) layoutReveal(ctr geom.Pt) {
	reveals := r.cm.menu.Reveals()
	if len(reveals) == 0 {
		r.reveal.Hide()
		return
	}
	fr := reveals[len(reveals)-1]
	img, err := fr.Render(r.deviceScale())
	if err != nil {
		r.cm.log.Warn("render fill reveal", slog.Any("err", err))
		r.reveal.Hide()
		return
	}
	ext := fr.Extent()
	r.reveal.Image = img
	r.reveal.Resize(fyne.NewSize(float32(ext), float32(ext)))
	r.reveal.Move(fyne.NewPos(float32(ctr.X-ext/2), float32(ctr.Y-ext/2)))
	r.reveal.Show()
	r.reveal.Refresh()
}

func (r *circleMenuRenderer) deviceScale() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if cv := app.Driver().CanvasForObject(r.cm); cv != nil && cv.Scale() > 0 {
		return float64(cv.Scale())
	}
	return 1
}

func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * math.Max(0, math.Min(1, alpha))))
	return n
}
