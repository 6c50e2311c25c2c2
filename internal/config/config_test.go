/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxSize != 50 || cfg.History.MergeWindow() != time.Second {
		t.Fatalf("history defaults: %+v", cfg.History)
	}
	if cfg.Transform.MinObjectSize != 20 || cfg.Transform.SnapDegrees != 15 {
		t.Fatalf("transform defaults: %+v", cfg.Transform)
	}
	if cfg.HitTest.HandleRadius != 8 || cfg.Clipboard.PasteOffset != 10 {
		t.Fatalf("hit test / clipboard defaults: %+v %+v", cfg.HitTest, cfg.Clipboard)
	}
}

func TestEnvOverridesHistory(t *testing.T) {
	isolate(t)
	t.Setenv("GCV_HISTORY_MAX_SIZE", "7")
	t.Setenv("GCV_HISTORY_MERGE_WINDOW_MS", "250")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxSize != 7 || cfg.History.MergeWindowMs != 250 {
		t.Fatalf("history overrides not applied: %+v", cfg.History)
	}
	if name, ok := EnvOverrideFor("history.max_size"); !ok || name != "GCV_HISTORY_MAX_SIZE" {
		t.Fatalf("EnvOverrideFor = %q,%v", name, ok)
	}
	if _, ok := EnvOverrideFor("transform.snap_degrees"); ok {
		t.Fatalf("unset variable must not report an override")
	}
}

func TestEnvOverridesRejectGarbage(t *testing.T) {
	isolate(t)
	t.Setenv("GCV_HISTORY_MAX_SIZE", "many")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric override")
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "ERROR")
	t.Setenv(EnvPrefix+"_LOG_FORMAT", "json")
	t.Setenv(EnvPrefix+"_LOG_SOURCE", "1")
	t.Setenv(EnvPrefix+"_LOG_FILE", "X:/gcv.log")
	t.Setenv(EnvPrefix+"_SERVER_ALLOWED_ORIGINS", "a.test,b.test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/gcv.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "b.test" {
		t.Fatalf("origins: %v", cfg.Server.AllowedOrigins)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := isolate(t)
	cfg := Defaults()
	cfg.History.MaxSize = 12
	cfg.Clipboard.System = true
	cfg.Server.Addr = "127.0.0.1:9000"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.History.MaxSize != 12 || !got.Clipboard.System || got.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("history: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = " DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/gcv.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/gcv.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestMergeKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	var src AppConfig
	mergeInto(&dst, &src)
	if dst.History.MaxSize != 50 || dst.HitTest.RotateHandleOffset != 24 || dst.Server.Addr != ":8088" {
		t.Fatalf("zero values overwrote defaults: %+v", dst)
	}
}

func TestEnvKeysSortedAndResolvable(t *testing.T) {
	keys := EnvKeys()
	if len(keys) != len(envKeys) {
		t.Fatalf("EnvKeys() returned %d keys, want %d", len(keys), len(envKeys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
	isolate(t)
	t.Setenv("GCV_SERVER_ADDR", ":9999")
	if name, ok := EnvOverrideFor("server.addr"); !ok || name != "GCV_SERVER_ADDR" {
		t.Fatalf("EnvOverrideFor(server.addr) = %q,%v", name, ok)
	}
}
