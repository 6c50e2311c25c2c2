/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package hittest resolves a pointer position to a transform handle, an
// object, or empty canvas.
package hittest

import (
	"math"

	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
	"gocanvas/internal/selection"
)

// Kind classifies a hit.
type Kind string

const (
	Empty  Kind = "empty"
	Handle Kind = "handle"
	Object Kind = "object"
)

// Result is the outcome of HitTest.
type Result struct {
	Kind Kind `json:"kind"`
	// ID is the hit object, or the owner of a single-object handle.
	ID string `json:"id,omitempty"`
	// Handle is the grip as the user sees it on screen.
	Handle geom.Handle `json:"handle,omitempty"`
	// Local is the object's own grip after undoing the rotation; equals
	// Handle for group handles.
	Local geom.Handle `json:"local,omitempty"`
	// Group marks a handle of the synthetic selection rectangle.
	Group bool `json:"group,omitempty"`
}

// HandleInfo describes one grip for renderers.
type HandleInfo struct {
	Handle   geom.Handle `json:"handle"`
	Local    geom.Handle `json:"local"`
	Position geom.Point  `json:"position"`
	ID       string      `json:"id,omitempty"`
	Group    bool        `json:"group,omitempty"`
}

// Options are in screen pixels.
type Options struct {
	HandleRadius       float64
	RotateOffset       float64
	MinStrokeTolerance float64
	StrokePadding      float64
}

func DefaultOptions() Options {
	return Options{HandleRadius: 8, RotateOffset: 24, MinStrokeTolerance: 4, StrokePadding: 3}
}

// Engine hit-tests against a scene and the current selection.
type Engine struct {
	backend scene.Backend
	sel     *selection.Model
	opts    Options
}

func New(backend scene.Backend, sel *selection.Model, opts Options) *Engine {
	return &Engine{backend: backend, sel: sel, opts: opts}
}

// Handles returns the grips of the current selection: the object's own
// rotated grips when one object is selected, the group rectangle's grips when
// several are, none otherwise.
func (e *Engine) Handles() []HandleInfo {
	scale := e.backend.Viewport().Scale()
	offset := e.opts.RotateOffset / scale
	if id, ok := e.sel.Single(); ok {
		t, ok := e.backend.Transform(id)
		if !ok {
			return nil
		}
		out := make([]HandleInfo, 0, 9)
		for _, raw := range geom.ResizeHandles() {
			out = append(out, HandleInfo{
				Handle:   geom.VisualHandle(raw, t.Rotation),
				Local:    raw,
				Position: t.HandlePosition(raw, offset),
				ID:       id,
			})
		}
		return append(out, HandleInfo{Handle: geom.HandleRotate, Local: geom.HandleRotate, Position: t.HandlePosition(geom.HandleRotate, offset), ID: id})
	}
	if e.sel.Size() < 2 {
		return nil
	}
	b, ok := e.sel.ComputeBounds(e.backend.Bounds)
	if !ok {
		return nil
	}
	box := geom.Snapshot{Position: b.Min(), Size: b.Size()}
	out := make([]HandleInfo, 0, 9)
	for _, h := range append(geom.ResizeHandles(), geom.HandleRotate) {
		out = append(out, HandleInfo{Handle: h, Local: h, Position: box.HandlePosition(h, offset), Group: true})
	}
	return out
}

// HitTest classifies world point p: selection handles first, then objects
// topmost first, then a tolerant pass over ink and line strokes.
func (e *Engine) HitTest(p geom.Point) Result {
	if r, ok := e.hitHandle(p); ok {
		return r
	}
	objs := e.backend.Objects()
	scale := e.backend.Viewport().Scale()
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if o.Kind.IsStroke() {
			if strokeDistance(o, p)*scale <= math.Max(o.Style.LineWidth/2, 0.5) {
				return Result{Kind: Object, ID: o.ID}
			}
			continue
		}
		if o.Transform.Contains(p) {
			return Result{Kind: Object, ID: o.ID}
		}
	}
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if !o.Kind.IsStroke() {
			continue
		}
		if strokeDistance(o, p)*scale <= e.strokeTolerance(o) {
			return Result{Kind: Object, ID: o.ID}
		}
	}
	return Result{Kind: Empty}
}

func (e *Engine) strokeTolerance(o scene.Object) float64 {
	return math.Max(e.opts.MinStrokeTolerance, o.Style.LineWidth/2+e.opts.StrokePadding)
}

func strokeDistance(o scene.Object, p geom.Point) float64 {
	return geom.DistanceToPolyline(p, o.WorldPoints())
}

func (e *Engine) hitHandle(p geom.Point) (Result, bool) {
	scale := e.backend.Viewport().Scale()
	best := math.Inf(1)
	var hit HandleInfo
	for _, h := range e.Handles() {
		d := h.Position.Sub(p).Len() * scale
		if d <= e.opts.HandleRadius && d < best {
			best, hit = d, h
		}
	}
	if math.IsInf(best, 1) {
		return Result{}, false
	}
	return Result{Kind: Handle, ID: hit.ID, Handle: hit.Handle, Local: hit.Local, Group: hit.Group}, true
}
