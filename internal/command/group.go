/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// GroupTransform is a GroupMove, GroupResize or GroupRotate: one undo step
// covering every member of a selection.
type GroupTransform struct {
	base
	doc    scene.Document
	ids    []string
	before map[string]geom.Snapshot
	after  map[string]geom.Snapshot
}

func newGroupTransform(t Type, verb string, doc scene.Document, ids []string, before, after map[string]geom.Snapshot, opts []Option) (*GroupTransform, error) {
	if len(ids) == 0 {
		return nil, targetNotFound(string(t), "")
	}
	for _, id := range ids {
		if _, ok := doc.Transform(id); !ok {
			return nil, targetNotFound(string(t), id)
		}
		if _, ok := before[id]; !ok {
			return nil, fmt.Errorf("%s: no start geometry for %q: %w", t, id, ErrTargetNotFound)
		}
		if _, ok := after[id]; !ok {
			return nil, fmt.Errorf("%s: no end geometry for %q: %w", t, id, ErrTargetNotFound)
		}
	}
	return &GroupTransform{
		base:   newBase(t, fmt.Sprintf("%s %d objects", verb, len(ids)), opts),
		doc:    doc,
		ids:    slices.Clone(ids),
		before: maps.Clone(before),
		after:  maps.Clone(after),
	}, nil
}

func NewGroupMove(doc scene.Document, ids []string, before, after map[string]geom.Snapshot, opts ...Option) (*GroupTransform, error) {
	return newGroupTransform(TypeGroupMove, "Move", doc, ids, before, after, opts)
}

func NewGroupResize(doc scene.Document, ids []string, before, after map[string]geom.Snapshot, opts ...Option) (*GroupTransform, error) {
	return newGroupTransform(TypeGroupResize, "Resize", doc, ids, before, after, opts)
}

func NewGroupRotate(doc scene.Document, ids []string, before, after map[string]geom.Snapshot, opts ...Option) (*GroupTransform, error) {
	return newGroupTransform(TypeGroupRotate, "Rotate", doc, ids, before, after, opts)
}

func (c *GroupTransform) Targets() []string { return slices.Clone(c.ids) }

func (c *GroupTransform) Execute() error { return c.apply(c.after) }
func (c *GroupTransform) Undo() error    { return c.apply(c.before) }

// apply sets every member or none: members are checked first, and the ones
// already written are put back if a later write fails.
func (c *GroupTransform) apply(state map[string]geom.Snapshot) error {
	if err := present(c.doc, string(c.typ), c.ids...); err != nil {
		return err
	}
	prior := make(map[string]geom.Snapshot, len(c.ids))
	for _, id := range c.ids {
		prior[id], _ = c.doc.Transform(id)
	}
	for i, id := range c.ids {
		if err := c.doc.SetTransform(id, state[id]); err != nil {
			for _, done := range c.ids[:i] {
				_ = c.doc.SetTransform(done, prior[done])
			}
			return err
		}
	}
	return nil
}

// CanMergeWith accepts a later command of the same type over the same set
// of objects, in any order.
func (c *GroupTransform) CanMergeWith(other Command) bool {
	o, ok := other.(*GroupTransform)
	if !ok || o.typ != c.typ || len(o.ids) != len(c.ids) {
		return false
	}
	a, b := slices.Sorted(slices.Values(c.ids)), slices.Sorted(slices.Values(o.ids))
	return slices.Equal(a, b)
}

func (c *GroupTransform) MergeWith(other Command) error {
	if !c.CanMergeWith(other) {
		return c.base.MergeWith(other)
	}
	o := other.(*GroupTransform)
	c.after = maps.Clone(o.after)
	c.ts = o.ts
	return nil
}

func (c *GroupTransform) String() string {
	return fmt.Sprintf("%s ids=[%s]", c.base.String(), strings.Join(c.ids, ","))
}
