/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"gocanvas/internal/config"
	"gocanvas/internal/crash"
	"gocanvas/internal/editor"
	applog "gocanvas/internal/log"
	"gocanvas/internal/server"
	"gocanvas/internal/version"
)

func usage() {
	fmt.Println("gocanvas: selection, transform and history engine for a canvas editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gocanvas version|-v|--version   Show version")
	fmt.Println("  gocanvas demo                   Run a scripted editing session and print the history")
	fmt.Println("  gocanvas serve [addr]           Serve editing sessions over websockets (/ws)")
	fmt.Println("  gocanvas config                 Print the effective configuration")
}

func main() {
	applog.Init(applog.FromEnv())
	info := &crash.Info{}
	defer crash.Recover(info)

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "demo":
		if err := runDemo(os.Stdout, editor.OptionsFrom(cfg), info); err != nil {
			l.Error("demo failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "serve":
		addr := cfg.Server.Addr
		if len(args) >= 3 {
			addr = args[2]
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := server.New(server.Options{
			Addr:           addr,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Editor:         editor.OptionsFrom(cfg),
		})
		if err := srv.ListenAndServe(ctx); err != nil {
			l.Error("server error", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "config":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		for _, key := range config.EnvKeys() {
			if name, ok := config.EnvOverrideFor(key); ok {
				fmt.Printf("# %s overridden by %s\n", key, name)
			}
		}
	default:
		usage()
		os.Exit(2)
	}
}
