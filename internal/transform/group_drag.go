/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"gocanvas/internal/bus"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// GroupDrag moves a whole selection by one uniform delta, so spacing inside
// the group is preserved exactly. Alt-drag follows the same duplicate
// protocol as Drag, using a single group request for all members.
type GroupDrag struct {
	env
	state   State
	ctx     *GroupContext
	orig    *GroupContext
	offset  geom.Point
	pointer geom.Point
	delta   geom.Point
	clone   cloneTracker
	mapping map[string]string
}

func NewGroupDrag(doc scene.Document, b *bus.Bus, opts Options) *GroupDrag {
	return &GroupDrag{env: env{doc: doc, bus: b, opts: opts}}
}

func (g *GroupDrag) State() State           { return g.state }
func (g *GroupDrag) CloneState() CloneState { return g.clone.state }

// Targets returns the ids currently being dragged.
func (g *GroupDrag) Targets() []string {
	if g.ctx == nil {
		return nil
	}
	return g.ctx.IDs()
}

func (g *GroupDrag) Start(ids []string, p geom.Point) error {
	if g.state != Idle {
		return ErrGestureActive
	}
	ctx, err := NewGroupContext(g.doc, ids, p)
	if err != nil {
		return err
	}
	g.state = Active
	g.ctx, g.orig = ctx, ctx
	g.offset = p.Sub(ctx.Bounds.Min())
	g.pointer = p
	g.delta = geom.Point{}
	g.mapping = nil
	g.clone.reset()
	g.publish(bus.GroupDrag, bus.Start, bus.GroupDragPayload{IDs: ctx.IDs(), Bounds: ctx.Bounds})
	return nil
}

func (g *GroupDrag) deltaAt(p geom.Point) geom.Point {
	return p.Sub(g.offset).Sub(g.ctx.Bounds.Min())
}

func (g *GroupDrag) Update(p geom.Point, mods Modifiers) {
	if g.state != Active {
		return
	}
	g.pointer = p
	g.delta = g.deltaAt(p)
	if g.clone.pending() {
		g.apply(g.ctx.Translated(g.delta))
		return
	}
	if g.clone.shouldRequest(mods.Alt) {
		g.apply(g.ctx.Translated(g.delta))
		req := g.clone.request()
		g.bus.Publish(bus.GroupDuplicateRequest, bus.GroupDuplicateRequestPayload{RequestID: req, Objects: g.orig.IDs()})
		return
	}
	g.emitUpdate()
}

func (g *GroupDrag) emitUpdate() {
	g.apply(g.ctx.Translated(g.delta))
	b := g.ctx.Bounds
	b.X += g.delta.X
	b.Y += g.delta.Y
	g.publish(bus.GroupDrag, bus.Update, bus.GroupDragPayload{IDs: g.ctx.IDs(), Delta: g.delta, Bounds: b})
}

// GroupDuplicateReady retargets the drag to the duplicates in r.Map
// (original -> duplicate). Originals go back to their start positions.
func (g *GroupDrag) GroupDuplicateReady(r bus.GroupDuplicateReadyPayload) bool {
	if g.state != Active || !g.clone.accept(r.RequestID) {
		return false
	}
	next := g.orig.Retarget(r.Map)
	for _, m := range next.Members {
		if _, ok := g.doc.Transform(m.ID); !ok {
			g.clone.state = CloneCancelled
			return false
		}
	}
	if len(next.Members) == 0 {
		g.clone.state = CloneCancelled
		return false
	}
	g.restore(g.orig)
	g.ctx = next
	g.mapping = r.Map
	g.emitUpdate()
	return true
}

// CancelClone abandons an outstanding duplicate request.
func (g *GroupDrag) CancelClone() bool { return g.clone.cancel() }

func (g *GroupDrag) End() (GroupResult, error) {
	if g.state != Active {
		return GroupResult{}, ErrNotActive
	}
	res := GroupResult{
		IDs:    g.ctx.IDs(),
		Before: g.ctx.StartTransforms(),
		After:  map[string]geom.Snapshot{},
		Cloned: g.clone.state == CloneReady,
	}
	for _, pl := range g.ctx.Translated(g.delta) {
		res.After[pl.ID] = pl.Transform
	}
	if res.Cloned {
		res.Originals = make(map[string]string, len(g.mapping))
		for orig, c := range g.mapping {
			res.Originals[c] = orig
		}
	}
	b := g.ctx.Bounds
	b.X += g.delta.X
	b.Y += g.delta.Y
	g.state = Idle
	g.clone.reset()
	g.ctx, g.orig, g.mapping = nil, nil, nil
	g.publish(bus.GroupDrag, bus.End, bus.GroupDragPayload{IDs: res.IDs, Delta: g.delta, Bounds: b})
	return res, nil
}
