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

	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// Member is one object of a group gesture with its geometry at gesture start.
type Member struct {
	ID    string
	Start geom.Snapshot
}

// Placement is a computed member transform.
type Placement struct {
	ID        string
	Transform geom.Snapshot
}

// GroupContext is the snapshot taken at group-gesture start: the group
// bounds, every member's start geometry and the start pointer. It is
// discarded at gesture end.
type GroupContext struct {
	Bounds  geom.Bounds
	Members []Member
	Pointer geom.Point
}

// NewGroupContext snapshots ids from backend. Members without geometry are
// skipped; ErrNoTarget is returned when none remain.
func NewGroupContext(backend scene.Backend, ids []string, pointer geom.Point) (*GroupContext, error) {
	c := &GroupContext{Pointer: pointer}
	found := false
	for _, id := range ids {
		t, ok := backend.Transform(id)
		if !ok {
			continue
		}
		c.Members = append(c.Members, Member{ID: id, Start: t})
		b := t.Bounds()
		if !found {
			c.Bounds, found = b, true
		} else {
			c.Bounds = c.Bounds.Union(b)
		}
	}
	if !found {
		return nil, fmt.Errorf("group of %d: %w", len(ids), ErrNoTarget)
	}
	return c, nil
}

func (c *GroupContext) IDs() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.ID
	}
	return out
}

// StartTransforms returns every member's start geometry keyed by id.
func (c *GroupContext) StartTransforms() map[string]geom.Snapshot {
	out := make(map[string]geom.Snapshot, len(c.Members))
	for _, m := range c.Members {
		out[m.ID] = m.Start
	}
	return out
}

// Translated moves every member by the same delta.
func (c *GroupContext) Translated(delta geom.Point) []Placement {
	out := make([]Placement, len(c.Members))
	for i, m := range c.Members {
		s := m.Start
		s.Position = s.Position.Add(delta)
		out[i] = Placement{ID: m.ID, Transform: s}
	}
	return out
}

// Scaled maps every member from the start bounds into newBounds: each centre
// keeps its relative place in the group and each size scales by (sx, sy).
func (c *GroupContext) Scaled(newBounds geom.Bounds, sx, sy float64) []Placement {
	origin := c.Bounds.Min()
	newOrigin := newBounds.Min()
	out := make([]Placement, len(c.Members))
	for i, m := range c.Members {
		rel := m.Start.Center().Sub(origin).Scale(sx, sy)
		s := m.Start
		s.Size = geom.Sz(s.Size.Width*sx, s.Size.Height*sy)
		s = s.WithCenter(newOrigin.Add(rel))
		out[i] = Placement{ID: m.ID, Transform: s}
	}
	return out
}

// Rotated turns every member's centre about center by deg and adds deg to
// each member's own rotation, so the group rotates rigidly.
func (c *GroupContext) Rotated(center geom.Point, deg float64) []Placement {
	out := make([]Placement, len(c.Members))
	for i, m := range c.Members {
		s := m.Start
		s = s.WithCenter(geom.RotateAround(m.Start.Center(), center, deg))
		s.Rotation = geom.NormalizeDegrees(m.Start.Rotation + deg)
		out[i] = Placement{ID: m.ID, Transform: s}
	}
	return out
}

// Retarget returns a context for the clones in mapping (original -> clone)
// that starts from the originals' start geometry. Members without a clone
// are dropped.
func (c *GroupContext) Retarget(mapping map[string]string) *GroupContext {
	n := &GroupContext{Bounds: c.Bounds, Pointer: c.Pointer}
	for _, m := range c.Members {
		if id, ok := mapping[m.ID]; ok {
			n.Members = append(n.Members, Member{ID: id, Start: m.Start})
		}
	}
	return n
}

func (e env) apply(ps []Placement) map[string]geom.Snapshot {
	out := make(map[string]geom.Snapshot, len(ps))
	for _, p := range ps {
		e.set(p.ID, p.Transform)
		out[p.ID] = p.Transform
	}
	return out
}

func (e env) restore(c *GroupContext) {
	for _, m := range c.Members {
		e.set(m.ID, m.Start)
	}
}
