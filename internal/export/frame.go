/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package export renders menu frames to PNG, either one at a time or as a
// numbered sequence sampled while the menu animates.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"circlemenu/internal/circlemenu"
	"circlemenu/internal/geom"
)

// FrameOptions controls frame rendering.
//   - Scale: device pixels per point, 1 when zero
//   - Background: painted below everything when set
//   - CenterColor: the center button disc, white when nil
type FrameOptions struct {
	Scale       float64
	Background  color.Color
	CenterColor color.Color
}

func (o FrameOptions) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// RenderFrame draws the menu as it looks right now: backdrop, fill rings,
// petals in stacking order, then the center button and its icons.
func RenderFrame(m *circlemenu.Menu, opt FrameOptions) (image.Image, error) {
	if m == nil {
		return nil, fmt.Errorf("menu is nil")
	}
	s := opt.scale()
	b := m.Bounds()
	w, h := int(math.Ceil(b.W*s)), int(math.Ceil(b.H*s))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("menu bounds are empty")
	}
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	if opt.Background != nil {
		dc.ClearWithColor(straight(opt.Background, 1))
	}
	if err := drawOverlay(dc, m, s); err != nil {
		return nil, err
	}
	c := geom.Pt{X: b.W / 2 * s, Y: b.H / 2 * s}
	for _, r := range m.Reveals() {
		img, err := r.Render(s)
		if err != nil {
			return nil, err
		}
		side := float64(img.Bounds().Dx())
		dc.DrawImage(gg.ImageBufFromImage(img), c.X-side/2, c.Y-side/2)
	}
	bs := m.Options().ButtonSize
	for _, p := range m.DrawPetals() {
		a := p.Alpha.Get()
		if a <= 0 {
			continue
		}
		o := p.Offset()
		if err := fillDisc(dc, c.X+o.X*s, c.Y+o.Y*s, bs/2*s, p.Color(), a); err != nil {
			return nil, fmt.Errorf("petal %d: %w", p.Index(), err)
		}
	}
	if err := drawCenter(dc, m, c, s, opt.CenterColor); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WriteFramePNG renders the current frame and encodes it as PNG.
func WriteFramePNG(w io.Writer, m *circlemenu.Menu, opt FrameOptions) error {
	img, err := RenderFrame(m, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportFramePNG writes the current frame to path, creating parent folders.
func ExportFramePNG(path string, m *circlemenu.Menu, opt FrameOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WriteFramePNG(f, m, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func drawOverlay(dc *gg.Context, m *circlemenu.Menu, s float64) error {
	ov := m.Overlay()
	if ov == nil || !ov.Visible() {
		return nil
	}
	img, err := ov.Image()
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	sz := ov.Size()
	dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		DstWidth:  sz.W * s,
		DstHeight: sz.H * s,
		Opacity:   ov.Alpha.Get(),
	})
	return nil
}

func drawCenter(dc *gg.Context, m *circlemenu.Menu, c geom.Pt, s float64, disc color.Color) error {
	ctr := m.Center()
	alpha, scale := ctr.Alpha.Get(), ctr.Scale.Get()
	if alpha <= 0 || scale <= 0 {
		return nil
	}
	if disc == nil {
		disc = color.White
	}
	r := m.Options().ButtonSize / 2 * s * scale
	if err := fillDisc(dc, c.X, c.Y, r, disc, alpha); err != nil {
		return fmt.Errorf("center: %w", err)
	}
	for _, v := range []*circlemenu.IconView{ctr.Normal, ctr.Selected} {
		if !v.Present() {
			continue
		}
		a := alpha * v.Alpha.Get()
		side := 2 * r * v.Scale.Get()
		if a <= 0 || side <= 0 {
			continue
		}
		img := v.Render(side)
		ext := float64(img.Bounds().Dx())
		dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
			X:       math.Round(c.X - ext/2),
			Y:       math.Round(c.Y - ext/2),
			Opacity: a,
		})
	}
	return nil
}

func fillDisc(dc *gg.Context, x, y, r float64, c color.Color, alpha float64) error {
	dc.SetFillBrush(gg.Solid(straight(c, alpha)))
	dc.DrawCircle(x, y, r)
	return dc.Fill()
}

// straight converts c to the non-premultiplied form gg expects, scaling its
// alpha by alpha.
func straight(c color.Color, alpha float64) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255 * alpha,
	}
}
