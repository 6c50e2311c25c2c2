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

// Rotate turns one object about its centre by the angle the pointer sweeps.
type Rotate struct {
	env
	state      State
	id         string
	before     geom.Snapshot
	center     geom.Point
	startAngle float64
	current    geom.Snapshot
}

func NewRotate(doc scene.Document, b *bus.Bus, opts Options) *Rotate {
	return &Rotate{env: env{doc: doc, bus: b, opts: opts}}
}

func (r *Rotate) State() State { return r.state }

func (r *Rotate) Start(id string, p geom.Point) error {
	if r.state != Idle {
		return ErrGestureActive
	}
	t, ok := r.doc.Transform(id)
	if !ok {
		return fmt.Errorf("rotate %q: %w", id, ErrNoTarget)
	}
	r.state = Active
	r.id = id
	r.before, r.current = t, t
	r.center = t.Center()
	r.startAngle = geom.AngleDegrees(r.center, p)
	r.publish(bus.Rotate, bus.Start, bus.TransformPayload{ID: id, Handle: geom.HandleRotate, Before: t, After: t})
	return nil
}

// Update applies the signed sweep since Start. Shift snaps the sweep to the
// configured step.
func (r *Rotate) Update(p geom.Point, mods Modifiers) {
	if r.state != Active {
		return
	}
	delta := sweep(r.center, r.startAngle, p, mods, r.opts.SnapDegrees)
	r.current = r.before
	r.current.Rotation = geom.NormalizeDegrees(r.before.Rotation + delta)
	r.set(r.id, r.current)
	r.publish(bus.Rotate, bus.Update, bus.TransformPayload{ID: r.id, Handle: geom.HandleRotate, Before: r.before, After: r.current})
}

func (r *Rotate) End() (Result, error) {
	if r.state != Active {
		return Result{}, ErrNotActive
	}
	res := Result{ID: r.id, Before: r.before, After: r.current, OriginalID: r.id}
	r.state = Idle
	r.publish(bus.Rotate, bus.End, bus.TransformPayload{ID: r.id, Handle: geom.HandleRotate, Before: res.Before, After: res.After})
	return res, nil
}

func sweep(center geom.Point, startAngle float64, p geom.Point, mods Modifiers, step float64) float64 {
	delta := geom.DeltaDegrees(startAngle, geom.AngleDegrees(center, p))
	if mods.Shift {
		delta = geom.SnapDegrees(delta, step)
	}
	return delta
}
