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

// GroupRotate turns a selection rigidly about the centre of its envelope.
type GroupRotate struct {
	env
	state      State
	ctx        *GroupContext
	center     geom.Point
	startAngle float64
	angle      float64
}

func NewGroupRotate(doc scene.Document, b *bus.Bus, opts Options) *GroupRotate {
	return &GroupRotate{env: env{doc: doc, bus: b, opts: opts}}
}

func (g *GroupRotate) State() State { return g.state }

func (g *GroupRotate) Start(ids []string, p geom.Point) error {
	if g.state != Idle {
		return ErrGestureActive
	}
	ctx, err := NewGroupContext(g.doc, ids, p)
	if err != nil {
		return err
	}
	g.state = Active
	g.ctx = ctx
	g.center = ctx.Bounds.Center()
	g.startAngle = geom.AngleDegrees(g.center, p)
	g.angle = 0
	g.publish(bus.GroupRotate, bus.Start, bus.GroupRotatePayload{IDs: ctx.IDs(), Center: g.center})
	return nil
}

func (g *GroupRotate) Update(p geom.Point, mods Modifiers) {
	if g.state != Active {
		return
	}
	g.angle = sweep(g.center, g.startAngle, p, mods, g.opts.SnapDegrees)
	g.apply(g.ctx.Rotated(g.center, g.angle))
	g.publish(bus.GroupRotate, bus.Update, bus.GroupRotatePayload{IDs: g.ctx.IDs(), Center: g.center, Angle: g.angle})
}

func (g *GroupRotate) End() (GroupResult, error) {
	if g.state != Active {
		return GroupResult{}, ErrNotActive
	}
	res := GroupResult{IDs: g.ctx.IDs(), Before: g.ctx.StartTransforms(), After: map[string]geom.Snapshot{}}
	for _, pl := range g.ctx.Rotated(g.center, g.angle) {
		res.After[pl.ID] = pl.Transform
	}
	g.state = Idle
	g.ctx = nil
	g.publish(bus.GroupRotate, bus.End, bus.GroupRotatePayload{IDs: res.IDs, Center: g.center, Angle: g.angle})
	return res, nil
}
