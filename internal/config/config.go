/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables (prefix GCV_) are read-only overrides
// applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type HistoryConfig struct {
	MaxSize       int `yaml:"max_size"`
	MergeWindowMs int `yaml:"merge_window_ms"`
}

// MergeWindow returns the merge window as a duration.
func (h HistoryConfig) MergeWindow() time.Duration {
	return time.Duration(h.MergeWindowMs) * time.Millisecond
}

type TransformConfig struct {
	MinObjectSize float64 `yaml:"min_object_size"`
	MinGroupSize  float64 `yaml:"min_group_size"`
	SnapDegrees   float64 `yaml:"snap_degrees"`
}

type HitTestConfig struct {
	HandleRadius       float64 `yaml:"handle_radius"`
	RotateHandleOffset float64 `yaml:"rotate_handle_offset"`
	MinStrokeTolerance float64 `yaml:"min_stroke_tolerance"`
	StrokePadding      float64 `yaml:"stroke_padding"`
}

type ClipboardConfig struct {
	System      bool    `yaml:"system"`
	PasteOffset float64 `yaml:"paste_offset"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	History       HistoryConfig   `yaml:"history"`
	Transform     TransformConfig `yaml:"transform"`
	HitTest       HitTestConfig   `yaml:"hit_test"`
	Clipboard     ClipboardConfig `yaml:"clipboard"`
	Server        ServerConfig    `yaml:"server"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		History:       HistoryConfig{MaxSize: 50, MergeWindowMs: 1000},
		Transform:     TransformConfig{MinObjectSize: 20, MinGroupSize: 20, SnapDegrees: 15},
		HitTest:       HitTestConfig{HandleRadius: 8, RotateHandleOffset: 24, MinStrokeTolerance: 4, StrokePadding: 3},
		Clipboard:     ClipboardConfig{System: false, PasteOffset: 10},
		Server:        ServerConfig{Addr: ":8088", AllowedOrigins: []string{"localhost:5173", "localhost:3000"}},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "GCV"

// EnvConfigPath points Load at an explicit config file.
const EnvConfigPath = "GCV_CONFIG"

// envOverrides mirrors AppConfig for envconfig; nil fields were not set.
type envOverrides struct {
	HistoryMaxSize       *int     `envconfig:"HISTORY_MAX_SIZE"`
	HistoryMergeWindowMs *int     `envconfig:"HISTORY_MERGE_WINDOW_MS"`
	MinObjectSize        *float64 `envconfig:"TRANSFORM_MIN_OBJECT_SIZE"`
	MinGroupSize         *float64 `envconfig:"TRANSFORM_MIN_GROUP_SIZE"`
	SnapDegrees          *float64 `envconfig:"TRANSFORM_SNAP_DEGREES"`
	HandleRadius         *float64 `envconfig:"HIT_TEST_HANDLE_RADIUS"`
	RotateHandleOffset   *float64 `envconfig:"HIT_TEST_ROTATE_HANDLE_OFFSET"`
	MinStrokeTolerance   *float64 `envconfig:"HIT_TEST_MIN_STROKE_TOLERANCE"`
	StrokePadding        *float64 `envconfig:"HIT_TEST_STROKE_PADDING"`
	ClipboardSystem      *bool    `envconfig:"CLIPBOARD_SYSTEM"`
	PasteOffset          *float64 `envconfig:"CLIPBOARD_PASTE_OFFSET"`
	ServerAddr           *string  `envconfig:"SERVER_ADDR"`
	AllowedOrigins       []string `envconfig:"SERVER_ALLOWED_ORIGINS"`
	LogLevel             *string  `envconfig:"LOG_LEVEL"`
	LogFormat            *string  `envconfig:"LOG_FORMAT"`
	LogSource            *bool    `envconfig:"LOG_SOURCE"`
	LogFile              *string  `envconfig:"LOG_FILE"`
}

// envKeys maps YAML keys to the variable overriding them.
var envKeys = map[string]string{
	"history.max_size":              "HISTORY_MAX_SIZE",
	"history.merge_window_ms":       "HISTORY_MERGE_WINDOW_MS",
	"transform.min_object_size":     "TRANSFORM_MIN_OBJECT_SIZE",
	"transform.min_group_size":      "TRANSFORM_MIN_GROUP_SIZE",
	"transform.snap_degrees":        "TRANSFORM_SNAP_DEGREES",
	"hit_test.handle_radius":        "HIT_TEST_HANDLE_RADIUS",
	"hit_test.rotate_handle_offset": "HIT_TEST_ROTATE_HANDLE_OFFSET",
	"hit_test.min_stroke_tolerance": "HIT_TEST_MIN_STROKE_TOLERANCE",
	"hit_test.stroke_padding":       "HIT_TEST_STROKE_PADDING",
	"clipboard.system":              "CLIPBOARD_SYSTEM",
	"clipboard.paste_offset":        "CLIPBOARD_PASTE_OFFSET",
	"server.addr":                   "SERVER_ADDR",
	"server.allowed_origins":        "SERVER_ALLOWED_ORIGINS",
	"logging.level":                 "LOG_LEVEL",
	"logging.format":                "LOG_FORMAT",
	"logging.source":                "LOG_SOURCE",
	"logging.file":                  "LOG_FILE",
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoCanvas")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "gocanvas")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, applies defaults and merges
// environment overrides. A missing file is not an error.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.History.MaxSize > 0 {
		dst.History.MaxSize = src.History.MaxSize
	}
	if src.History.MergeWindowMs > 0 {
		dst.History.MergeWindowMs = src.History.MergeWindowMs
	}
	mergePositive(&dst.Transform.MinObjectSize, src.Transform.MinObjectSize)
	mergePositive(&dst.Transform.MinGroupSize, src.Transform.MinGroupSize)
	mergePositive(&dst.Transform.SnapDegrees, src.Transform.SnapDegrees)
	mergePositive(&dst.HitTest.HandleRadius, src.HitTest.HandleRadius)
	mergePositive(&dst.HitTest.RotateHandleOffset, src.HitTest.RotateHandleOffset)
	mergePositive(&dst.HitTest.MinStrokeTolerance, src.HitTest.MinStrokeTolerance)
	mergePositive(&dst.HitTest.StrokePadding, src.HitTest.StrokePadding)
	// booleans: copy directly from src (file) so user preferences persist
	dst.Clipboard.System = src.Clipboard.System
	mergePositive(&dst.Clipboard.PasteOffset, src.Clipboard.PasteOffset)
	if strings.TrimSpace(src.Server.Addr) != "" {
		dst.Server.Addr = strings.TrimSpace(src.Server.Addr)
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = append([]string(nil), src.Server.AllowedOrigins...)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func mergePositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var o envOverrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	setInt := func(dst *int, v *int) {
		if v != nil && *v > 0 {
			*dst = *v
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil && *v > 0 {
			*dst = *v
		}
	}
	setInt(&cfg.History.MaxSize, o.HistoryMaxSize)
	setInt(&cfg.History.MergeWindowMs, o.HistoryMergeWindowMs)
	setFloat(&cfg.Transform.MinObjectSize, o.MinObjectSize)
	setFloat(&cfg.Transform.MinGroupSize, o.MinGroupSize)
	setFloat(&cfg.Transform.SnapDegrees, o.SnapDegrees)
	setFloat(&cfg.HitTest.HandleRadius, o.HandleRadius)
	setFloat(&cfg.HitTest.RotateHandleOffset, o.RotateHandleOffset)
	setFloat(&cfg.HitTest.MinStrokeTolerance, o.MinStrokeTolerance)
	setFloat(&cfg.HitTest.StrokePadding, o.StrokePadding)
	setFloat(&cfg.Clipboard.PasteOffset, o.PasteOffset)
	if o.ClipboardSystem != nil {
		cfg.Clipboard.System = *o.ClipboardSystem
	}
	if o.ServerAddr != nil && strings.TrimSpace(*o.ServerAddr) != "" {
		cfg.Server.Addr = strings.TrimSpace(*o.ServerAddr)
	}
	if len(o.AllowedOrigins) > 0 {
		cfg.Server.AllowedOrigins = o.AllowedOrigins
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(*o.LogLevel)
	}
	if o.LogFormat != nil && *o.LogFormat != "" {
		cfg.Logging.Format = strings.ToLower(*o.LogFormat)
	}
	if o.LogSource != nil {
		cfg.Logging.Source = *o.LogSource
	}
	if o.LogFile != nil && *o.LogFile != "" {
		cfg.Logging.File = *o.LogFile
	}
	return nil
}

// EnvKeys returns the overridable keys, sorted.
func EnvKeys() []string {
	keys := make([]string, 0, len(envKeys))
	for k := range envKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	suffix, ok := envKeys[key]
	if !ok {
		return "", false
	}
	name := EnvPrefix + "_" + suffix
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}
