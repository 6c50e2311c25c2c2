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

	"gocanvas/internal/clipboard"
	"gocanvas/internal/geom"
	"gocanvas/internal/ids"
	"gocanvas/internal/scene"
	"gocanvas/internal/selection"
)

// PasteOffset is the default shift of pasted objects away from their source.
const PasteOffset = 10.0

// Copy places objects on the clipboard. The document is untouched; Undo puts
// back whatever the clipboard held before.
type Copy struct {
	base
	clip    clipboard.Clipboard
	objs    []scene.Object
	prev    []scene.Object
	hadPrev bool
}

func NewCopy(doc scene.Backend, clip clipboard.Clipboard, targets []string, opts ...Option) (*Copy, error) {
	if len(targets) == 0 {
		return nil, targetNotFound(string(TypeCopy), "")
	}
	c := &Copy{clip: clip}
	for _, id := range targets {
		o, ok := doc.Object(id)
		if !ok {
			return nil, targetNotFound(string(TypeCopy), id)
		}
		c.objs = append(c.objs, o)
	}
	c.base = newBase(TypeCopy, fmt.Sprintf("Copy %d objects", len(c.objs)), opts)
	return c, nil
}

func (c *Copy) Execute() error {
	prev, ok, err := c.clip.Read()
	if err != nil {
		prev, ok = nil, false
	}
	c.prev, c.hadPrev = prev, ok
	return c.clip.Write(c.objs)
}

func (c *Copy) Undo() error {
	if !c.hadPrev {
		return c.clip.Write(nil)
	}
	return c.clip.Write(c.prev)
}

// Paste inserts copies of the clipboard contents, shifted by offset on both
// axes, and selects them. The new ids are fixed at construction so redo recreates the
// same objects.
type Paste struct {
	base
	doc     scene.Document
	sel     *selection.Model
	objs    []scene.Object
	prevSel []string
}

func NewPaste(doc scene.Document, sel *selection.Model, clip clipboard.Clipboard, offset float64, opts ...Option) (*Paste, error) {
	src, ok, err := clip.Read()
	if err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	if !ok || len(src) == 0 {
		return nil, ErrNothingToPaste
	}
	p := &Paste{doc: doc, sel: sel}
	for _, o := range src {
		c := o.Clone()
		c.ID = ids.NewObjectID()
		c.Transform.Position = c.Transform.Position.Add(geom.Point{X: offset, Y: offset})
		p.objs = append(p.objs, c)
	}
	p.base = newBase(TypePaste, fmt.Sprintf("Paste %d objects", len(p.objs)), opts)
	return p, nil
}

// IDs returns the ids the pasted objects receive.
func (p *Paste) IDs() []string {
	out := make([]string, len(p.objs))
	for i, o := range p.objs {
		out[i] = o.ID
	}
	return out
}

func (p *Paste) Execute() error {
	if err := absent(p.doc, string(p.typ), p.IDs()...); err != nil {
		return err
	}
	for _, o := range p.objs {
		if err := p.doc.Insert(o, -1); err != nil {
			return err
		}
	}
	if p.sel != nil {
		p.prevSel = p.sel.IDs()
		p.sel.Set(p.IDs())
	}
	return nil
}

func (p *Paste) Undo() error {
	if err := present(p.doc, string(p.typ), p.IDs()...); err != nil {
		return err
	}
	for i := len(p.objs) - 1; i >= 0; i-- {
		if _, _, err := p.doc.Remove(p.objs[i].ID); err != nil {
			return err
		}
	}
	if p.sel != nil {
		p.sel.Set(p.prevSel)
	}
	return nil
}
