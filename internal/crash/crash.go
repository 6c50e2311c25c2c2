/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI or a session into a report file.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "gocanvas/internal/log"
	"gocanvas/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Info describes what goes into a crash report. All fields are optional.
type Info struct {
	// Dir receives the report; empty means os.TempDir().
	Dir     string
	Session string
	// History lists the undo stack, oldest first.
	History func() []string
	// Scene dumps the document; the dump is written next to the report.
	Scene func() ([]byte, error)
}

// Recover captures a panic, logs it with its stack, writes a report file and,
// when info.Scene is set, a scene dump. It then exits with code 2.
//
// Usage: defer crash.Recover(info)
func Recover(info *Info) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(info, r, stack)
	if err != nil {
		l.Error("crash report failed", slog.Any("err", err))
	}
	if info != nil && info.Scene != nil {
		if path, err := writeScene(info, reportPath); err != nil {
			l.Error("scene dump failed", slog.Any("err", err))
		} else {
			l.Info("scene dump written", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func reportDir(info *Info) string {
	if info != nil && info.Dir != "" {
		_ = os.MkdirAll(info.Dir, 0o755)
		return info.Dir
	}
	return os.TempDir()
}

func writeReport(info *Info, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(reportDir(info), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "GoCanvas Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if info != nil {
		if info.Session != "" {
			_, _ = fmt.Fprintf(&buf, "Session: %s\n", info.Session)
		}
		if info.History != nil {
			_, _ = fmt.Fprintf(&buf, "History:\n")
			for i, d := range info.History() {
				_, _ = fmt.Fprintf(&buf, "  %d. %s\n", i+1, d)
			}
		}
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}

func writeScene(info *Info, reportPath string) (string, error) {
	data, err := info.Scene()
	if err != nil {
		return "", err
	}
	path := reportPath[:len(reportPath)-len(filepath.Ext(reportPath))] + ".scene.json"
	return path, os.WriteFile(path, data, 0o644)
}
