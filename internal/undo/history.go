/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"fmt"
	"time"

	"gocanvas/internal/bus"
	"gocanvas/internal/command"
	applog "gocanvas/internal/log"
)

// Config controls the depth cap and coalescing behavior.
type Config struct {
	// MaxSize caps the number of entries; the oldest is evicted when exceeded.
	MaxSize int
	// MergeWindow is the longest gap between two commands that may still merge.
	MergeWindow time.Duration
}

func DefaultConfig() Config {
	return Config{MaxSize: 50, MergeWindow: time.Second}
}

// History is a bounded undo/redo stack of commands with a cursor.
//
// The entries live in a ring buffer; cursor is the logical index of the last
// executed entry (-1 when nothing is executed). History is not safe for
// concurrent use; the owning editor serializes access.
type History struct {
	cfg    Config
	bus    *bus.Bus
	ring   []command.Command
	start  int
	length int
	cursor int
	replay bool
}

// New builds a History. b may be nil.
func New(cfg Config, b *bus.Bus) *History {
	def := DefaultConfig()
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.MergeWindow < 0 {
		cfg.MergeWindow = def.MergeWindow
	}
	return &History{cfg: cfg, bus: b, ring: make([]command.Command, cfg.MaxSize), cursor: -1}
}

func (h *History) at(i int) command.Command { return h.ring[(h.start+i)%len(h.ring)] }

func (h *History) set(i int, c command.Command) { h.ring[(h.start+i)%len(h.ring)] = c }

// Push executes c and records it. Inside an undo or redo replay c is only
// executed. A command that can merge into the newest entry, and arrives
// within the merge window, is folded into it instead of pushed.
func (h *History) Push(c command.Command) error {
	if h.replay {
		return c.Execute()
	}
	if err := c.Execute(); err != nil {
		return fmt.Errorf("execute %s: %w", c.Type(), err)
	}
	l := applog.WithComponent("history")
	if h.cursor >= 0 && h.cursor == h.length-1 {
		last := h.at(h.cursor)
		gap := c.Timestamp().Sub(last.Timestamp())
		if gap >= 0 && gap <= h.cfg.MergeWindow && last.CanMergeWith(c) {
			if err := last.MergeWith(c); err == nil {
				l.Debug("merged", "type", c.Type(), "into", last.ID(), "gap", gap)
				h.notify(last.Description())
				return nil
			}
		}
	}
	// Drop the redo tail.
	for i := h.cursor + 1; i < h.length; i++ {
		h.set(i, nil)
	}
	h.length = h.cursor + 1
	if h.length == len(h.ring) {
		l.Debug("evicted", "id", h.at(0).ID(), "type", h.at(0).Type())
		h.set(0, nil)
		h.start = (h.start + 1) % len(h.ring)
		h.length--
		h.cursor--
	}
	h.set(h.length, c)
	h.length++
	h.cursor++
	h.notify(c.Description())
	return nil
}

// Undo reverts the entry at the cursor. It reports false when there is
// nothing to undo or the command failed; a failure leaves the cursor alone.
func (h *History) Undo() bool {
	if h.cursor < 0 {
		return false
	}
	c := h.at(h.cursor)
	if err := h.run(c, "undo", c.Undo); err != nil {
		return false
	}
	h.cursor--
	h.notify(c.Description())
	return true
}

// Redo re-executes the entry after the cursor.
func (h *History) Redo() bool {
	if h.cursor >= h.length-1 {
		return false
	}
	h.cursor++
	c := h.at(h.cursor)
	if err := h.run(c, "redo", c.Execute); err != nil {
		h.cursor--
		return false
	}
	h.notify(c.Description())
	return true
}

// run calls fn with the replay guard set, turning a panic into an error.
func (h *History) run(c command.Command, op string, fn func() error) (err error) {
	h.replay = true
	defer func() {
		h.replay = false
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			applog.WithOperation(applog.WithComponent("history"), op).Error(op+" failed",
				"cmd", c.String(), "err", err)
		}
	}()
	return fn()
}

func (h *History) Len() int          { return h.length }
func (h *History) CurrentIndex() int { return h.cursor }
func (h *History) CanUndo() bool     { return h.cursor >= 0 }
func (h *History) CanRedo() bool     { return h.cursor < h.length-1 }

// Replaying reports whether an undo or redo is in progress.
func (h *History) Replaying() bool { return h.replay }

// Entries returns the commands oldest first.
func (h *History) Entries() []command.Command {
	out := make([]command.Command, h.length)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}

// Descriptions returns the entry descriptions oldest first.
func (h *History) Descriptions() []string {
	out := make([]string, h.length)
	for i := range out {
		out[i] = h.at(i).Description()
	}
	return out
}

func (h *History) Clear() {
	clear(h.ring)
	h.start, h.length, h.cursor = 0, 0, -1
	h.notify("")
}

func (h *History) notify(desc string) {
	h.bus.Publish(bus.HistoryChange, bus.HistoryPayload{
		Length:       h.length,
		CurrentIndex: h.cursor,
		CanUndo:      h.CanUndo(),
		CanRedo:      h.CanRedo(),
		Description:  desc,
	})
}
