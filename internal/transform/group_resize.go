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

// GroupResize drags a handle of the selection's axis-aligned envelope and
// scales every member with it.
type GroupResize struct {
	env
	state   State
	ctx     *GroupContext
	handle  geom.Handle
	current geom.Bounds
	sx, sy  float64
}

func NewGroupResize(doc scene.Document, b *bus.Bus, opts Options) *GroupResize {
	return &GroupResize{env: env{doc: doc, bus: b, opts: opts}}
}

func (g *GroupResize) State() State { return g.state }

func (g *GroupResize) Start(ids []string, h geom.Handle, p geom.Point) error {
	if g.state != Idle {
		return ErrGestureActive
	}
	if !h.IsResize() {
		return fmt.Errorf("group resize with handle %q: %w", h, ErrNoTarget)
	}
	ctx, err := NewGroupContext(g.doc, ids, p)
	if err != nil {
		return err
	}
	g.state = Active
	g.ctx = ctx
	g.handle = h
	g.current = ctx.Bounds
	g.sx, g.sy = 1, 1
	g.publish(bus.GroupResize, bus.Start, g.payload())
	return nil
}

func (g *GroupResize) payload() bus.GroupResizePayload {
	return bus.GroupResizePayload{IDs: g.ctx.IDs(), Handle: g.handle, StartBounds: g.ctx.Bounds, NewBounds: g.current, ScaleX: g.sx, ScaleY: g.sy}
}

// Update computes the new envelope from the pointer delta, floors it at the
// minimum group size, derives the scale factors and applies them to members.
// Shift locks the aspect ratio so sx == sy.
func (g *GroupResize) Update(p geom.Point, mods Modifiers) {
	if g.state != Active {
		return
	}
	start := g.ctx.Bounds
	g.current = geom.ResizeBox(start, g.handle, p.Sub(g.ctx.Pointer), mods.Shift, g.opts.minGroup())
	g.sx, g.sy = 1, 1
	if start.Width > 0 {
		g.sx = g.current.Width / start.Width
	}
	if start.Height > 0 {
		g.sy = g.current.Height / start.Height
	}
	if mods.Shift {
		g.sy = g.sx
	}
	g.apply(g.ctx.Scaled(g.current, g.sx, g.sy))
	g.publish(bus.GroupResize, bus.Update, g.payload())
}

func (g *GroupResize) End() (GroupResult, error) {
	if g.state != Active {
		return GroupResult{}, ErrNotActive
	}
	res := GroupResult{IDs: g.ctx.IDs(), Before: g.ctx.StartTransforms(), After: map[string]geom.Snapshot{}}
	for _, pl := range g.ctx.Scaled(g.current, g.sx, g.sy) {
		res.After[pl.ID] = pl.Transform
	}
	payload := g.payload()
	g.state = Idle
	g.ctx = nil
	g.publish(bus.GroupResize, bus.End, payload)
	return res, nil
}

// Scale returns the factors of the last update.
func (g *GroupResize) Scale() (sx, sy float64) { return g.sx, g.sy }
