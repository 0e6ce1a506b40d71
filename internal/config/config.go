/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable circle menu configuration. Files
// are YAML or TOML (picked by extension) and are layered over Defaults;
// environment variables are read-only overrides applied last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in" toml:"telemetry_opt_in" json:"telemetry_opt_in"`
}

type MenuConfig struct {
	ItemCount       int      `yaml:"item_count" toml:"item_count" json:"item_count"`
	DurationMs      int      `yaml:"duration_ms" toml:"duration_ms" json:"duration_ms"`
	Distance        float64  `yaml:"distance" toml:"distance" json:"distance"`
	ShowDelayMs     int      `yaml:"show_delay_ms" toml:"show_delay_ms" json:"show_delay_ms"`
	OpenDurationMs  int      `yaml:"open_duration_ms" toml:"open_duration_ms" json:"open_duration_ms"`
	CloseDurationMs int      `yaml:"close_duration_ms" toml:"close_duration_ms" json:"close_duration_ms"`
	ButtonSize      float64  `yaml:"button_size" toml:"button_size" json:"button_size"`
	NormalIcon      string   `yaml:"normal_icon" toml:"normal_icon" json:"normal_icon"`
	SelectedIcon    string   `yaml:"selected_icon" toml:"selected_icon" json:"selected_icon"`
	IconDir         string   `yaml:"icon_dir" toml:"icon_dir" json:"icon_dir"`
	PetalColors     []string `yaml:"petal_colors" toml:"petal_colors" json:"petal_colors"`
}

type BorderColors struct {
	Top    string `yaml:"top" toml:"top" json:"top"`
	Right  string `yaml:"right" toml:"right" json:"right"`
	Bottom string `yaml:"bottom" toml:"bottom" json:"bottom"`
	Left   string `yaml:"left" toml:"left" json:"left"`
}

type OverlayConfig struct {
	Colors            []string     `yaml:"colors" toml:"colors" json:"colors"`
	DimmedColors      []string     `yaml:"dimmed_colors" toml:"dimmed_colors" json:"dimmed_colors"`
	Locations         []float64    `yaml:"locations" toml:"locations" json:"locations"`
	Mode              string       `yaml:"mode" toml:"mode" json:"mode"`
	Direction         string       `yaml:"direction" toml:"direction" json:"direction"`
	AutomaticallyDims bool         `yaml:"automatically_dims" toml:"automatically_dims" json:"automatically_dims"`
	DrawsThinBorders  bool         `yaml:"draws_thin_borders" toml:"draws_thin_borders" json:"draws_thin_borders"`
	BorderColors      BorderColors `yaml:"border_colors" toml:"border_colors" json:"border_colors"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
	Source bool   `yaml:"source" toml:"source" json:"source"`
	File   string `yaml:"file" toml:"file" json:"file"`
}

// AppConfig is the whole configuration file.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" toml:"config_version" json:"config_version"`
	General       GeneralConfig `yaml:"general" toml:"general" json:"general"`
	Menu          MenuConfig    `yaml:"menu" toml:"menu" json:"menu"`
	Overlay       OverlayConfig `yaml:"overlay" toml:"overlay" json:"overlay"`
	Logging       LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false},
		Menu: MenuConfig{
			ItemCount:       3,
			DurationMs:      2000,
			Distance:        100,
			ShowDelayMs:     0,
			OpenDurationMs:  500,
			CloseDurationMs: 200,
			ButtonSize:      50,
		},
		Overlay: OverlayConfig{
			// HSB(11°, 73%, 83%) and HSB(337°, 69%, 65%) at 70% alpha
			Colors:            []string{"#d45539b3", "#a6335fb3"},
			Mode:              "linear",
			Direction:         "vertical",
			AutomaticallyDims: true,
			DrawsThinBorders:  true,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvItemCount      = "CM_ITEM_COUNT"
	EnvDurationMs     = "CM_DURATION_MS"
	EnvDistance       = "CM_DISTANCE"
	EnvShowDelayMs    = "CM_SHOW_DELAY_MS"
	EnvTelemetryOptIn = "CM_TELEMETRY_OPT_IN"
	EnvConfigFile     = "CM_CONFIG"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CM_LOG_LEVEL"
	EnvLogFormat = "CM_LOG_FORMAT"
	EnvLogSource = "CM_LOG_SOURCE"
	EnvLogFile   = "CM_LOG_FILE"
)

// ConfigPath returns the per-user config file path. CM_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "CircleMenu")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "CircleMenu")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "circlemenu")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (a missing file is not an error), applies
// defaults and environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Defaults()
		applyEnvOverrides(&cfg)
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads path over the defaults and applies environment overrides.
// Files ending in .toml are TOML, everything else YAML.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return Defaults(), err
	}
	normalize(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Decode unmarshals data into cfg using the format implied by name.
func Decode(name string, data []byte, cfg *AppConfig) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse toml %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml %s: %w", name, err)
		}
	}
	return nil
}

// Save writes cfg to the user config path as YAML, or TOML when the path
// ends in .toml.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, keeping a timestamped backup of the file it
// replaces.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeConfigAtomic(path, data)
}

func normalize(cfg *AppConfig) {
	cfg.Overlay.Mode = strings.ToLower(strings.TrimSpace(cfg.Overlay.Mode))
	cfg.Overlay.Direction = strings.ToLower(strings.TrimSpace(cfg.Overlay.Direction))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvItemCount)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Menu.ItemCount = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDurationMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Menu.DurationMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDistance)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Menu.Distance = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvShowDelayMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Menu.ShowDelayMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"menu.item_count":          EnvItemCount,
	"menu.duration_ms":         EnvDurationMs,
	"menu.distance":            EnvDistance,
	"menu.show_delay_ms":       EnvShowDelayMs,
	"general.telemetry_opt_in": EnvTelemetryOptIn,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
