/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"time"

	"gocanvas/internal/command"
	"gocanvas/internal/geom"
	"gocanvas/internal/hittest"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
	"gocanvas/internal/transform"
)

// Pointer is one pointer event in screen coordinates.
type Pointer struct {
	X    float64             `json:"x"`
	Y    float64             `json:"y"`
	Mods transform.Modifiers `json:"mods"`
}

func (e *Editor) world(p Pointer) geom.Point {
	return e.doc.Viewport().ToWorld(geom.Pt(p.X, p.Y))
}

// PointerDown hit-tests p and starts the matching gesture: a handle starts a
// resize or rotate, an object starts a drag (of the whole selection when it
// holds several objects), empty canvas starts a box selection.
func (e *Editor) PointerDown(p Pointer) (hittest.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != none {
		return hittest.Result{}, fmt.Errorf("pointer down during %s: %w", e.active, ErrBusy)
	}
	w := e.world(p)
	r := e.hit.HitTest(w)
	var err error
	switch r.Kind {
	case hittest.Handle:
		err = e.startHandle(r, w)
	case hittest.Object:
		err = e.startObject(r.ID, w, p.Mods)
	default:
		if !p.Mods.Additive() {
			e.sel.Clear()
		}
		if err = e.box.Start(w, p.Mods); err == nil {
			e.active = boxSelecting
		}
	}
	if err != nil {
		applog.WithComponent("editor").Warn("gesture start failed", "kind", string(r.Kind), "id", r.ID, "err", err)
	}
	return r, err
}

func (e *Editor) startHandle(r hittest.Result, w geom.Point) error {
	switch {
	case r.Group && r.Handle == geom.HandleRotate:
		if err := e.grotate.Start(e.sel.IDs(), w); err != nil {
			return err
		}
		e.active = groupRotating
	case r.Group:
		if err := e.gresize.Start(e.sel.IDs(), r.Handle, w); err != nil {
			return err
		}
		e.active = groupResizing
	case r.Handle == geom.HandleRotate:
		if err := e.rotate.Start(r.ID, w); err != nil {
			return err
		}
		e.active = rotating
	default:
		if err := e.resize.Start(r.ID, r.Handle, w); err != nil {
			return err
		}
		e.active = resizing
	}
	return nil
}

func (e *Editor) startObject(id string, w geom.Point, mods transform.Modifiers) error {
	switch {
	case mods.Additive():
		if !e.sel.Toggle(id) {
			return nil
		}
	case !e.sel.Has(id):
		e.sel.Set([]string{id})
	}
	if e.sel.Size() > 1 {
		if err := e.gdrag.Start(e.sel.IDs(), w); err != nil {
			return err
		}
		e.active = groupDragging
		return nil
	}
	if err := e.drag.Start(id, w); err != nil {
		return err
	}
	e.active = dragging
	return nil
}

// PointerMove feeds the active gesture. Without one it is a hover and does
// nothing.
func (e *Editor) PointerMove(p Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.world(p)
	switch e.active {
	case dragging:
		e.drag.Update(w, p.Mods)
	case resizing:
		e.resize.Update(w, p.Mods)
	case rotating:
		e.rotate.Update(w, p.Mods)
	case groupDragging:
		e.gdrag.Update(w, p.Mods)
	case groupResizing:
		e.gresize.Update(w, p.Mods)
	case groupRotating:
		e.grotate.Update(w, p.Mods)
	case boxSelecting:
		e.box.Update(w, p.Mods)
	}
}

// PointerUp applies p as a last update, ends the active gesture and pushes
// the resulting command. It returns the pushed command, or nil when the
// gesture changed nothing.
func (e *Editor) PointerUp(p Pointer) (command.Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == none {
		return nil, nil
	}
	g := e.active
	e.active = none
	w := e.world(p)
	ts := command.At(time.Now())

	var (
		c   command.Command
		err error
	)
	switch g {
	case dragging:
		e.drag.Update(w, p.Mods)
		c, err = e.finishSingle(e.drag.End, command.NewMove, ts)
	case resizing:
		e.resize.Update(w, p.Mods)
		c, err = e.finishSingle(e.resize.End, command.NewResize, ts)
	case rotating:
		e.rotate.Update(w, p.Mods)
		c, err = e.finishSingle(e.rotate.End, command.NewRotate, ts)
	case groupDragging:
		e.gdrag.Update(w, p.Mods)
		c, err = e.finishGroup(e.gdrag.End, command.NewGroupMove, ts)
	case groupResizing:
		e.gresize.Update(w, p.Mods)
		c, err = e.finishGroup(e.gresize.End, command.NewGroupResize, ts)
	case groupRotating:
		e.grotate.Update(w, p.Mods)
		c, err = e.finishGroup(e.grotate.End, command.NewGroupRotate, ts)
	case boxSelecting:
		e.box.Update(w, p.Mods)
		_, err = e.box.End()
	}
	if err != nil {
		applog.WithComponent("editor").Error("gesture end failed", "gesture", g.String(), "err", err)
		return nil, err
	}
	return c, nil
}

type singleCtor func(scene.Document, string, geom.Snapshot, geom.Snapshot, ...command.Option) (*command.Transform, error)

type groupCtor func(scene.Document, []string, map[string]geom.Snapshot, map[string]geom.Snapshot, ...command.Option) (*command.GroupTransform, error)

func (e *Editor) finishSingle(end func() (transform.Result, error), mk singleCtor, ts command.Option) (command.Command, error) {
	res, err := end()
	if err != nil {
		return nil, err
	}
	if res.Cloned {
		return e.claimClones([]string{res.ID}, ts)
	}
	if !res.Changed() {
		return nil, nil
	}
	c, err := mk(e.doc, res.ID, res.Before, res.After, ts)
	if err != nil {
		return nil, err
	}
	return c, e.hist.Push(c)
}

func (e *Editor) finishGroup(end func() (transform.GroupResult, error), mk groupCtor, ts command.Option) (command.Command, error) {
	res, err := end()
	if err != nil {
		return nil, err
	}
	if res.Cloned {
		return e.claimClones(res.IDs, ts)
	}
	if !res.Changed() {
		return nil, nil
	}
	c, err := mk(e.doc, res.IDs, res.Before, res.After, ts)
	if err != nil {
		return nil, err
	}
	return c, e.hist.Push(c)
}

// claimClones records the duplicates an Alt-drag moved as one Create and
// selects them.
func (e *Editor) claimClones(clones []string, ts command.Option) (command.Command, error) {
	c, err := command.NewClaim(e.doc, e.sel, clones, ts)
	if err != nil {
		return nil, fmt.Errorf("claim clones: %w", err)
	}
	e.sel.Set(clones)
	return c, e.hist.Push(c)
}
