/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"circlemenu/internal/circlemenu"
	"circlemenu/internal/config"
	"circlemenu/internal/crash"
	applog "circlemenu/internal/log"
	"circlemenu/internal/ui"
	"circlemenu/internal/version"
)

func usage() {
	fmt.Println("Circle Menu")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  circlemenu version|-v|--version                 Show version")
	fmt.Println("  circlemenu demo [-config f] [-select n]        Run the menu headless and print its state")
	fmt.Println("  circlemenu render [-config f] [-out dir] ...   Render frames to PNG")
	fmt.Println("  circlemenu validate [file]                     Check a config file against the schema")
	fmt.Println("  circlemenu ui [-config f]                      Launch the demo window (build with -tags fyne)")
}

// menuRef lets the crash handler see a menu created after it was deferred.
type menuRef struct{ m *circlemenu.Menu }

func (r *menuRef) Snapshot() string { return r.m.Snapshot() }

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	gg.SetLogger(applog.WithComponent("render"))
	l := applog.WithComponent("cli")
	ref := &menuRef{}
	defer crash.Recover(ref)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	var err error
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
		return
	case "demo":
		err = demoCmd(os.Stdout, args[2:], ref)
	case "render":
		err = renderCmd(os.Stdout, args[2:], ref)
	case "validate":
		err = validateCmd(os.Stdout, args[2:])
	case "ui":
		err = uiCmd(args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		l.Error("command failed", slog.String("cmd", args[1]), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads path, or the per-user config when path is empty, validates
// it and re-initializes logging from its logging section.
func loadConfig(path string) (config.AppConfig, error) {
	var cfg config.AppConfig
	var err error
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		return cfg, err
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	gg.SetLogger(applog.WithComponent("render"))
	return cfg, nil
}

func validateCmd(w io.Writer, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if _, err := cfg.MenuOptions(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s: ok\n", path)
	return nil
}

func uiCmd(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (YAML or TOML)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	return ui.Run(cfg)
}
