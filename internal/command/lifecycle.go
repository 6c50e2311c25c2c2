/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import (
	"cmp"
	"fmt"
	"slices"

	"gocanvas/internal/scene"
	"gocanvas/internal/selection"
)

// Create adds objects to the document; Undo removes them again.
type Create struct {
	base
	doc  scene.Document
	sel  *selection.Model
	objs []scene.Object
	// claimed objects were already in the document when recorded, so the
	// first Execute only confirms their geometry.
	claimed bool
}

// NewCreate records creating objs. Every id must be new to doc; an existing
// id fails with scene.ErrExists. sel may be nil; when set, Undo deselects
// the removed objects.
func NewCreate(doc scene.Document, sel *selection.Model, objs []scene.Object, opts ...Option) (*Create, error) {
	c, err := newCreate(doc, sel, objs, opts)
	if err != nil {
		return nil, err
	}
	if err := absent(doc, string(TypeCreate), c.ids()...); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClaim records objects another component already inserted, such as the
// duplicates of an Alt-drag, as a Create. The objects are snapshotted from
// doc: Undo removes them and Redo inserts those snapshots.
func NewClaim(doc scene.Document, sel *selection.Model, targets []string, opts ...Option) (*Create, error) {
	objs := make([]scene.Object, 0, len(targets))
	for _, id := range targets {
		o, ok := doc.Object(id)
		if !ok {
			return nil, targetNotFound(string(TypeCreate), id)
		}
		objs = append(objs, o)
	}
	c, err := newCreate(doc, sel, objs, opts)
	if err != nil {
		return nil, err
	}
	c.claimed = true
	return c, nil
}

func newCreate(doc scene.Document, sel *selection.Model, objs []scene.Object, opts []Option) (*Create, error) {
	if len(objs) == 0 {
		return nil, targetNotFound(string(TypeCreate), "")
	}
	c := &Create{doc: doc, sel: sel, objs: make([]scene.Object, len(objs))}
	seen := make(map[string]bool, len(objs))
	for i, o := range objs {
		if o.ID == "" {
			return nil, targetNotFound(string(TypeCreate), "")
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("%s %q twice: %w", TypeCreate, o.ID, scene.ErrExists)
		}
		seen[o.ID] = true
		c.objs[i] = o.Clone()
	}
	desc := fmt.Sprintf("Create %s", objs[0].ID)
	if len(objs) > 1 {
		desc = fmt.Sprintf("Create %d objects", len(objs))
	}
	c.base = newBase(TypeCreate, desc, opts)
	return c, nil
}

func (c *Create) ids() []string {
	out := make([]string, len(c.objs))
	for i, o := range c.objs {
		out[i] = o.ID
	}
	return out
}

// Objects returns copies of the created objects.
func (c *Create) Objects() []scene.Object {
	out := make([]scene.Object, len(c.objs))
	for i, o := range c.objs {
		out[i] = o.Clone()
	}
	return out
}

func (c *Create) Execute() error {
	if c.claimed {
		c.claimed = false
		if present(c.doc, string(c.typ), c.ids()...) == nil {
			for _, o := range c.objs {
				if err := c.doc.SetTransform(o.ID, o.Transform); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if err := absent(c.doc, string(c.typ), c.ids()...); err != nil {
		return err
	}
	for _, o := range c.objs {
		if err := c.doc.Insert(o, -1); err != nil {
			return err
		}
	}
	return nil
}

func (c *Create) Undo() error {
	if err := present(c.doc, string(c.typ), c.ids()...); err != nil {
		return err
	}
	for i := len(c.objs) - 1; i >= 0; i-- {
		id := c.objs[i].ID
		if _, _, err := c.doc.Remove(id); err != nil {
			return err
		}
		if c.sel != nil {
			c.sel.Remove(id)
		}
	}
	return nil
}

type removed struct {
	obj      scene.Object
	z        int
	selected bool
}

// Delete removes objects and drops them from the selection. Undo reinserts
// each object at its original z-index and restores its selection state.
type Delete struct {
	base
	doc     scene.Document
	sel     *selection.Model
	entries []removed
}

func NewDelete(doc scene.Document, sel *selection.Model, ids []string, opts ...Option) (*Delete, error) {
	if len(ids) == 0 {
		return nil, targetNotFound(string(TypeDelete), "")
	}
	order := doc.Order()
	d := &Delete{doc: doc, sel: sel}
	for _, id := range ids {
		o, ok := doc.Object(id)
		if !ok {
			return nil, targetNotFound(string(TypeDelete), id)
		}
		d.entries = append(d.entries, removed{obj: o, z: slices.Index(order, id), selected: sel != nil && sel.Has(id)})
	}
	slices.SortFunc(d.entries, func(a, b removed) int { return cmp.Compare(a.z, b.z) })
	desc := fmt.Sprintf("Delete %s", ids[0])
	if len(ids) > 1 {
		desc = fmt.Sprintf("Delete %d objects", len(ids))
	}
	d.base = newBase(TypeDelete, desc, opts)
	return d, nil
}

func (d *Delete) ids() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.obj.ID
	}
	return out
}

func (d *Delete) Execute() error {
	if err := present(d.doc, string(d.typ), d.ids()...); err != nil {
		return err
	}
	for i := len(d.entries) - 1; i >= 0; i-- {
		id := d.entries[i].obj.ID
		if _, _, err := d.doc.Remove(id); err != nil {
			return err
		}
		if d.sel != nil {
			d.sel.Remove(id)
		}
	}
	return nil
}

func (d *Delete) Undo() error {
	if err := absent(d.doc, string(d.typ), d.ids()...); err != nil {
		return err
	}
	for _, e := range d.entries {
		if err := d.doc.Insert(e.obj, e.z); err != nil {
			return err
		}
		if d.sel != nil && e.selected {
			d.sel.Add(e.obj.ID)
		}
	}
	return nil
}
