/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package icon resolves center button icon names to images on disk.
package icon

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Extensions tried, in order, for names given without one.
var Extensions = []string{".png", ".webp", ".bmp", ".jpg", ".jpeg", ".gif"}

// Loader reads icons from Dir and scales them to Size x Size pixels. Size 0
// keeps the decoded size. Results, including misses, are cached by name.
type Loader struct {
	Dir  string
	Size int
	Log  *slog.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewLoader returns a Loader for dir.
func NewLoader(dir string, size int, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{Dir: dir, Size: size, Log: log, cache: map[string]image.Image{}}
}

// Load returns the named icon or nil when it is missing or cannot be decoded.
func (l *Loader) Load(name string) image.Image {
	if name == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache == nil {
		l.cache = map[string]image.Image{}
	}
	if img, ok := l.cache[name]; ok {
		return img
	}
	img := l.load(name)
	l.cache[name] = img
	return img
}

func (l *Loader) load(name string) image.Image {
	path, ok := l.resolve(name)
	if !ok {
		l.logger().Warn("icon not found", slog.String("name", name), slog.String("dir", l.Dir))
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		l.logger().Warn("open icon", slog.String("path", path), slog.Any("err", err))
		return nil
	}
	defer func() { _ = f.Close() }()
	img, format, err := image.Decode(f)
	if err != nil {
		l.logger().Warn("decode icon", slog.String("path", path), slog.Any("err", err))
		return nil
	}
	l.logger().Debug("icon loaded", slog.String("path", path), slog.String("format", format))
	if l.Size <= 0 {
		return img
	}
	return Fit(img, l.Size)
}

func (l *Loader) resolve(name string) (string, bool) {
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.Dir, name)
	}
	if filepath.Ext(p) != "" {
		if fileExists(p) {
			return p, true
		}
		return "", false
	}
	for _, ext := range Extensions {
		if fileExists(p + ext) {
			return p + ext, true
		}
	}
	return "", false
}

func (l *Loader) logger() *slog.Logger {
	if l.Log == nil {
		return slog.Default()
	}
	return l.Log
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

// Fit scales img into a size x size square, keeping its aspect ratio and
// centering it on a transparent background.
func Fit(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if b.Empty() {
		return dst
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, size*b.Dy()/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, size*b.Dx()/b.Dy())
	}
	x0, y0 := (size-w)/2, (size-h)/2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, b, draw.Over, nil)
	return dst
}
