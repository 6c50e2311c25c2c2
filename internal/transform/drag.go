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

// Drag moves one object so that it keeps its offset to the pointer.
//
// Holding Alt during the drag requests a duplicate. Until the reply arrives
// the original keeps following the pointer but no updates are published; on
// the reply the original returns to its start position and the duplicate
// continues the drag.
type Drag struct {
	env
	state   State
	id      string
	origID  string
	before  geom.Snapshot
	offset  geom.Point
	pointer geom.Point
	clone   cloneTracker
}

func NewDrag(doc scene.Document, b *bus.Bus, opts Options) *Drag {
	return &Drag{env: env{doc: doc, bus: b, opts: opts}}
}

func (d *Drag) State() State           { return d.state }
func (d *Drag) CloneState() CloneState { return d.clone.state }

// Target returns the object currently being dragged.
func (d *Drag) Target() string { return d.id }

// Start records the pointer offset relative to the object's position.
func (d *Drag) Start(id string, p geom.Point) error {
	if d.state != Idle {
		return ErrGestureActive
	}
	t, ok := d.doc.Transform(id)
	if !ok {
		return fmt.Errorf("drag %q: %w", id, ErrNoTarget)
	}
	d.state = Active
	d.id, d.origID = id, id
	d.before = t
	d.offset = p.Sub(t.Position)
	d.pointer = p
	d.clone.reset()
	d.publish(bus.Drag, bus.Start, bus.TransformPayload{ID: id, Before: t, After: t})
	return nil
}

func (d *Drag) at(p geom.Point) geom.Snapshot {
	s := d.before
	s.Position = p.Sub(d.offset)
	return s
}

// Update moves the target to pointer - offset.
func (d *Drag) Update(p geom.Point, mods Modifiers) {
	if d.state != Active {
		return
	}
	d.pointer = p
	next := d.at(p)
	if d.clone.pending() {
		d.set(d.id, next)
		return
	}
	if d.clone.shouldRequest(mods.Alt) {
		d.set(d.id, next)
		req := d.clone.request()
		d.bus.Publish(bus.DuplicateRequest, bus.DuplicateRequestPayload{RequestID: req, OriginalID: d.origID, Position: d.before.Position})
		return
	}
	d.set(d.id, next)
	d.publish(bus.Drag, bus.Update, bus.TransformPayload{ID: d.id, Before: d.before, After: next})
}

// DuplicateReady retargets the drag to the duplicate. It reports false when
// no request is outstanding, e.g. for a reply arriving after End.
func (d *Drag) DuplicateReady(r bus.DuplicateReadyPayload) bool {
	if d.state != Active || r.OriginalID != d.origID || !d.clone.accept(r.RequestID) {
		return false
	}
	if _, ok := d.doc.Transform(r.NewID); !ok {
		d.clone.state = CloneCancelled
		return false
	}
	d.set(d.origID, d.before)
	d.id = r.NewID
	next := d.at(d.pointer)
	d.set(d.id, next)
	d.publish(bus.Drag, bus.Update, bus.TransformPayload{ID: d.id, Before: d.before, After: next})
	return true
}

// CancelClone abandons an outstanding duplicate request; the drag continues
// on the original.
func (d *Drag) CancelClone() bool { return d.clone.cancel() }

// End finishes the gesture. A pending duplicate request is abandoned and the
// move applies to the original.
func (d *Drag) End() (Result, error) {
	if d.state != Active {
		return Result{}, ErrNotActive
	}
	after, ok := d.doc.Transform(d.id)
	if !ok {
		after = d.at(d.pointer)
	}
	res := Result{ID: d.id, Before: d.before, After: after, OriginalID: d.origID, Cloned: d.clone.state == CloneReady}
	d.state = Idle
	d.clone.reset()
	d.publish(bus.Drag, bus.End, bus.TransformPayload{ID: res.ID, Before: res.Before, After: res.After})
	return res, nil
}
