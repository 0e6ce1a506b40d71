//go:build fyne && cgo

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
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"circlemenu/internal/circlemenu"
	"circlemenu/internal/config"
	"circlemenu/internal/crash"
	"circlemenu/internal/icon"
	applog "circlemenu/internal/log"
	"circlemenu/internal/telemetry"
	"circlemenu/internal/version"
)

// Run opens the demo window: a circle menu over the overlay backdrop and a
// status line reporting delegate callbacks.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	gg.SetLogger(applog.WithComponent("render"))
	l.Info("starting UI", slog.String("version", version.String()))

	opts, err := cfg.MenuOptions()
	if err != nil {
		return fmt.Errorf("menu options: %w", err)
	}
	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	tel := telemetry.New(tcfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		tel.Flush(ctx)
		tel.Close()
	}()

	status := widget.NewLabel("Tap the center button")
	dimmed := false
	var cm *CircleMenu
	delegate := tel.WrapDelegate(circlemenu.DelegateFuncs{
		OnWillSelect: func(_ *circlemenu.Menu, _ *circlemenu.Petal, index int) {
			status.SetText(fmt.Sprintf("Selecting petal %d", index))
		},
		OnDidSelect: func(_ *circlemenu.Menu, _ *circlemenu.Petal, index int) {
			status.SetText(fmt.Sprintf("Selected petal %d", index))
		},
	})
	icons := icon.NewLoader(cfg.Menu.IconDir, int(opts.ButtonSize), applog.WithComponent("icon"))
	cm = NewCircleMenu(opts, circlemenu.WithDelegate(delegate), circlemenu.WithIcons(icons))
	tel.TrackMenu(cm.Menu())
	defer crash.Recover(cm.Menu())

	fyneApp := app.NewWithID("circlemenu")
	w := fyneApp.NewWindow("Circle Menu")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 480)
	winH := prefs.IntWithFallback("window.height", 480)
	if winW < 320 {
		winW = 320
	}
	if winH < 320 {
		winH = 320
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	dim := widget.NewCheck("Dimmed tint", func(on bool) {
		dimmed = on
		cm.SetDimmed(dimmed)
	})
	closeBtn := widget.NewButton("Hide buttons", func() {
		cm.Menu().HideButtons(opts.CloseDuration, 0)
		cm.Refresh()
	})
	cm.Menu().OnStateChange(func(_, to circlemenu.State) {
		if to == circlemenu.Open {
			status.SetText("Pick a petal")
		}
	})

	w.SetContent(container.NewBorder(nil, container.NewHBox(dim, closeBtn, status), nil, nil, container.NewCenter(cm)))
	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})
	w.ShowAndRun()
	return nil
}
