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
	"gocanvas/internal/ids"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
)

func (e *Editor) idle(op string) error {
	if e.active != none {
		return fmt.Errorf("%s during %s: %w", op, e.active, ErrBusy)
	}
	return nil
}

func (e *Editor) push(c command.Command) error {
	if err := e.hist.Push(c); err != nil {
		applog.WithComponent("editor").Error("command failed", "cmd", c.String(), "err", err)
		return err
	}
	return nil
}

// Create adds objects as one undo step and selects them. Objects without an
// id get one; text objects without a size are measured.
func (e *Editor) Create(objs ...scene.Object) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("create"); err != nil {
		return nil, err
	}
	out := make([]scene.Object, len(objs))
	created := make([]string, len(objs))
	for i, o := range objs {
		if o.ID == "" {
			o.ID = ids.NewObjectID()
		}
		o = scene.FitText(o)
		out[i], created[i] = o, o.ID
	}
	c, err := command.NewCreate(e.doc, e.sel, out, command.At(time.Now()))
	if err != nil {
		return nil, err
	}
	if err := e.push(c); err != nil {
		return nil, err
	}
	e.sel.Set(created)
	return created, nil
}

// DeleteSelection deletes the selected objects. It returns nil, nil when
// nothing is selected.
func (e *Editor) DeleteSelection() (command.Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("delete"); err != nil {
		return nil, err
	}
	if e.sel.Size() == 0 {
		return nil, nil
	}
	c, err := command.NewDelete(e.doc, e.sel, e.sel.IDs(), command.At(time.Now()))
	if err != nil {
		return nil, err
	}
	return c, e.push(c)
}

// CopySelection puts the selected objects on the clipboard.
func (e *Editor) CopySelection() (command.Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("copy"); err != nil {
		return nil, err
	}
	if e.sel.Size() == 0 {
		return nil, nil
	}
	c, err := command.NewCopy(e.doc, e.clip, e.sel.IDs(), command.At(time.Now()))
	if err != nil {
		return nil, err
	}
	return c, e.push(c)
}

// Paste inserts the clipboard contents and returns the new ids.
func (e *Editor) Paste() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("paste"); err != nil {
		return nil, err
	}
	c, err := command.NewPaste(e.doc, e.sel, e.clip, e.opts.PasteOffset, command.At(time.Now()))
	if err != nil {
		return nil, err
	}
	if err := e.push(c); err != nil {
		return nil, err
	}
	return c.IDs(), nil
}

// Reorder changes the z-order of the selection. A no-op change is not
// recorded.
func (e *Editor) Reorder(op command.ZOp) (command.Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("reorder"); err != nil {
		return nil, err
	}
	ts := command.At(time.Now())
	switch e.sel.Size() {
	case 0:
		return nil, nil
	case 1:
		id, _ := e.sel.Single()
		c, err := command.NewReorderZ(e.doc, id, op, ts)
		if err != nil || !c.Changed() {
			return nil, err
		}
		return c, e.push(c)
	default:
		c, err := command.NewGroupReorderZ(e.doc, e.sel.IDs(), op, ts)
		if err != nil || !c.Changed() {
			return nil, err
		}
		return c, e.push(c)
	}
}

// RenameFile sets the file name of a file object.
func (e *Editor) RenameFile(id, name string) (command.Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idle("rename"); err != nil {
		return nil, err
	}
	c, err := command.NewEditFileName(e.doc, id, name, command.At(time.Now()))
	if err != nil {
		return nil, err
	}
	return c, e.push(c)
}

// SelectAll selects every object in z-order.
func (e *Editor) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.Set(e.doc.Order())
}

// Select replaces the selection.
func (e *Editor) Select(targets ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.Set(targets)
}

// Undo reverts the newest history entry. It reports false during a gesture,
// with nothing to undo, or when the command failed.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != none {
		return false
	}
	return e.hist.Undo()
}

func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != none {
		return false
	}
	return e.hist.Redo()
}
