/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"fmt"

	"gocanvas/internal/bus"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// Resize drags one handle of a single, possibly rotated, object. The handle
// is given as seen on screen and remapped to the object's own handle, and the
// opposite edge or corner stays fixed in world space.
type Resize struct {
	env
	state   State
	id      string
	visual  geom.Handle
	local   geom.Handle
	before  geom.Snapshot
	start   geom.Point
	current geom.Snapshot
}

func NewResize(doc scene.Document, b *bus.Bus, opts Options) *Resize {
	return &Resize{env: env{doc: doc, bus: b, opts: opts}}
}

func (r *Resize) State() State { return r.state }

// Local returns the object's own handle the gesture drags.
func (r *Resize) Local() geom.Handle { return r.local }

func (r *Resize) Start(id string, visual geom.Handle, p geom.Point) error {
	if r.state != Idle {
		return ErrGestureActive
	}
	if !visual.IsResize() {
		return fmt.Errorf("resize %q with handle %q: %w", id, visual, ErrNoTarget)
	}
	t, ok := r.doc.Transform(id)
	if !ok {
		return fmt.Errorf("resize %q: %w", id, ErrNoTarget)
	}
	r.state = Active
	r.id = id
	r.visual = visual
	r.local = geom.RemapHandle(visual, t.Rotation)
	r.before, r.current = t, t
	r.start = p
	r.publish(bus.Resize, bus.Start, bus.TransformPayload{ID: id, Handle: visual, Before: t, After: t})
	return nil
}

// Update resizes by the pointer delta since Start. Shift locks the aspect ratio.
func (r *Resize) Update(p geom.Point, mods Modifiers) {
	if r.state != Active {
		return
	}
	r.current = geom.ResizeRotated(r.before, r.local, p.Sub(r.start), mods.Shift, r.opts.minObject())
	r.set(r.id, r.current)
	r.publish(bus.Resize, bus.Update, bus.TransformPayload{ID: r.id, Handle: r.visual, Before: r.before, After: r.current})
}

func (r *Resize) End() (Result, error) {
	if r.state != Active {
		return Result{}, ErrNotActive
	}
	res := Result{ID: r.id, Before: r.before, After: r.current, OriginalID: r.id}
	r.state = Idle
	r.publish(bus.Resize, bus.End, bus.TransformPayload{ID: r.id, Handle: r.visual, Before: res.Before, After: res.After})
	return res, nil
}
