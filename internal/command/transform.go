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

	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// Transform is a Move, Resize or Rotate of one object. It stores the full
// geometry before and after, so undo restores position, size and rotation
// bit for bit.
type Transform struct {
	base
	doc    scene.Document
	target string
	before geom.Snapshot
	after  geom.Snapshot
}

func newTransform(t Type, verb string, doc scene.Document, id string, before, after geom.Snapshot, opts []Option) (*Transform, error) {
	if _, ok := doc.Transform(id); !ok {
		return nil, targetNotFound(string(t), id)
	}
	return &Transform{
		base:   newBase(t, fmt.Sprintf("%s %s", verb, id), opts),
		doc:    doc,
		target: id,
		before: before,
		after:  after,
	}, nil
}

// NewMove records moving id from before to after.
func NewMove(doc scene.Document, id string, before, after geom.Snapshot, opts ...Option) (*Transform, error) {
	return newTransform(TypeMove, "Move", doc, id, before, after, opts)
}

// NewResize records resizing id; position changes with the anchored edge.
func NewResize(doc scene.Document, id string, before, after geom.Snapshot, opts ...Option) (*Transform, error) {
	return newTransform(TypeResize, "Resize", doc, id, before, after, opts)
}

// NewRotate records rotating id.
func NewRotate(doc scene.Document, id string, before, after geom.Snapshot, opts ...Option) (*Transform, error) {
	return newTransform(TypeRotate, "Rotate", doc, id, before, after, opts)
}

func (c *Transform) Target() string        { return c.target }
func (c *Transform) Before() geom.Snapshot { return c.before }
func (c *Transform) After() geom.Snapshot  { return c.after }

func (c *Transform) Execute() error { return c.doc.SetTransform(c.target, c.after) }
func (c *Transform) Undo() error    { return c.doc.SetTransform(c.target, c.before) }

// CanMergeWith accepts a later command of the same type on the same object.
func (c *Transform) CanMergeWith(other Command) bool {
	o, ok := other.(*Transform)
	return ok && o.typ == c.typ && o.target == c.target
}

// MergeWith keeps the receiver's before state and takes other's after state
// and timestamp, so a chain of small steps stays one entry.
func (c *Transform) MergeWith(other Command) error {
	if !c.CanMergeWith(other) {
		return c.base.MergeWith(other)
	}
	o := other.(*Transform)
	c.after = o.after
	c.ts = o.ts
	return nil
}

func (c *Transform) String() string {
	return fmt.Sprintf("%s before=%+v after=%+v", c.base.String(), c.before, c.after)
}
