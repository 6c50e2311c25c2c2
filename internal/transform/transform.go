/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transform holds the pointer-gesture controllers. Each controller is
// a small state machine (Idle -> Active -> Idle) that receives world-space
// pointer positions, writes live previews into the scene document and
// publishes gesture notifications. On End it reports before/after geometry
// so the caller can build an undoable command.
package transform

import (
	"errors"

	"gocanvas/internal/bus"
	"gocanvas/internal/geom"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
)

var (
	ErrGestureActive = errors.New("transform: gesture already active")
	ErrNotActive     = errors.New("transform: no active gesture")
	ErrNoTarget      = errors.New("transform: no target geometry")
)

// State is the controller lifecycle.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Modifiers are the keyboard modifiers held during a pointer event.
// Shift locks aspect ratio and snaps rotation, Alt clones on drag, Shift or
// Ctrl make box selection additive.
type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Alt   bool `json:"alt,omitempty"`
	Ctrl  bool `json:"ctrl,omitempty"`
}

// Additive reports whether a selection gesture extends the prior selection.
func (m Modifiers) Additive() bool { return m.Shift || m.Ctrl }

// Options bound the geometry produced by the controllers.
type Options struct {
	MinObjectSize float64
	MinGroupSize  float64
	SnapDegrees   float64
}

func DefaultOptions() Options {
	return Options{MinObjectSize: 20, MinGroupSize: 20, SnapDegrees: 15}
}

func (o Options) minObject() geom.Size { return geom.Sz(o.MinObjectSize, o.MinObjectSize) }
func (o Options) minGroup() geom.Size  { return geom.Sz(o.MinGroupSize, o.MinGroupSize) }

// Result is what a single-object controller reports at End.
type Result struct {
	ID     string
	Before geom.Snapshot
	After  geom.Snapshot
	// OriginalID and Cloned are set when an Alt-drag moved a duplicate.
	OriginalID string
	Cloned     bool
}

// Changed reports whether the gesture altered the geometry.
func (r Result) Changed() bool { return r.Cloned || r.Before != r.After }

// GroupResult is what a group controller reports at End.
type GroupResult struct {
	IDs    []string
	Before map[string]geom.Snapshot
	After  map[string]geom.Snapshot
	// Originals maps clone ids back to their sources after an Alt-drag.
	Originals map[string]string
	Cloned    bool
}

// Changed reports whether any member moved.
func (r GroupResult) Changed() bool {
	if r.Cloned {
		return true
	}
	for id, b := range r.Before {
		if r.After[id] != b {
			return true
		}
	}
	return false
}

// env is shared by all controllers.
type env struct {
	doc  scene.Document
	bus  *bus.Bus
	opts Options
}

func (e env) set(id string, s geom.Snapshot) {
	if err := e.doc.SetTransform(id, s); err != nil {
		applog.WithComponent("transform").Warn("preview update failed", "id", id, "err", err)
	}
}

func (e env) publish(g bus.Gesture, p bus.Phase, payload any) {
	e.bus.Publish(bus.GestureTopic(g, p), payload)
}
