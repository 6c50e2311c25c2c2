/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"errors"
	"slices"
	"testing"

	"gocanvas/internal/bus"
	"gocanvas/internal/command"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
	"gocanvas/internal/transform"
)

func rect(id string, x, y, w, h float64) scene.Object {
	return scene.Object{ID: id, Kind: scene.KindRect, Transform: geom.Snapshot{Position: geom.Pt(x, y), Size: geom.Sz(w, h)}}
}

func setup(t *testing.T, objs ...scene.Object) (*Editor, *scene.Store, *bus.Recorder) {
	t.Helper()
	st := scene.NewStore()
	if err := st.Add(objs...); err != nil {
		t.Fatalf("add: %v", err)
	}
	e := New(st, nil, DefaultOptions())
	t.Cleanup(e.Close)
	rec := bus.Record(e.Bus())
	t.Cleanup(rec.Stop)
	return e, st, rec
}

func at(x, y float64) Pointer { return Pointer{X: x, Y: y} }

func alt(x, y float64) Pointer { return Pointer{X: x, Y: y, Mods: transform.Modifiers{Alt: true}} }

func drag(t *testing.T, e *Editor, from Pointer, to ...Pointer) command.Command {
	t.Helper()
	if _, err := e.PointerDown(from); err != nil {
		t.Fatalf("down: %v", err)
	}
	for _, p := range to[:len(to)-1] {
		e.PointerMove(p)
	}
	c, err := e.PointerUp(to[len(to)-1])
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	return c
}

func position(t *testing.T, st *scene.Store, id string) geom.Point {
	t.Helper()
	tr, ok := st.Transform(id)
	if !ok {
		t.Fatalf("%s missing", id)
	}
	return tr.Position
}

func TestEditor_DragUndoRedo(t *testing.T) {
	e, st, rec := setup(t, rect("x", 10, 10, 100, 50))
	c := drag(t, e, at(20, 20), at(35, 25), at(50, 40))
	if c == nil || c.Type() != command.TypeMove {
		t.Fatalf("expected a move command, got %v", c)
	}
	if got := position(t, st, "x"); got != geom.Pt(40, 30) {
		t.Fatalf("after drag: %+v", got)
	}
	if e.History().Len() != 1 {
		t.Fatalf("history len: %d", e.History().Len())
	}
	if !e.Undo() {
		t.Fatalf("undo failed")
	}
	if got := position(t, st, "x"); got != geom.Pt(10, 10) {
		t.Fatalf("after undo: %+v", got)
	}
	if !e.Redo() {
		t.Fatalf("redo failed")
	}
	if got := position(t, st, "x"); got != geom.Pt(40, 30) {
		t.Fatalf("after redo: %+v", got)
	}
	want := []bus.Topic{"drag:start", "drag:update", "drag:update", "drag:end"}
	var got []bus.Topic
	for _, tp := range rec.Topics() {
		if slices.Contains(want, tp) {
			got = append(got, tp)
		}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("gesture topics: %v", got)
	}
	if rec.Count(bus.SelectionSet) != 1 {
		t.Fatalf("click should select once, got %d", rec.Count(bus.SelectionSet))
	}
}

func TestEditor_ZoomedViewport(t *testing.T) {
	e, st, _ := setup(t, rect("x", 10, 10, 100, 50))
	st.SetViewport(geom.Viewport{Zoom: 2})
	drag(t, e, at(40, 40), at(100, 80))
	if got := position(t, st, "x"); got != geom.Pt(40, 30) {
		t.Fatalf("zoomed drag should move in world units: %+v", got)
	}
}

func TestEditor_BusyWhileGestureActive(t *testing.T) {
	e, _, _ := setup(t, rect("x", 10, 10, 100, 50))
	if _, err := e.PointerDown(at(20, 20)); err != nil {
		t.Fatalf("down: %v", err)
	}
	if _, err := e.PointerDown(at(20, 20)); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := e.DeleteSelection(); !errors.Is(err, ErrBusy) {
		t.Fatalf("delete during a drag: %v", err)
	}
	if _, err := e.CopySelection(); !errors.Is(err, ErrBusy) {
		t.Fatalf("copy during a drag: %v", err)
	}
	if _, err := e.RenameFile("x", "late.pdf"); !errors.Is(err, ErrBusy) {
		t.Fatalf("rename during a drag: %v", err)
	}
	if e.Undo() {
		t.Fatalf("undo during a drag must be refused")
	}
	if _, err := e.PointerUp(at(20, 20)); err != nil {
		t.Fatalf("up: %v", err)
	}
	if e.History().Len() != 0 {
		t.Fatalf("a click without movement records nothing")
	}
	if e.Active() != "none" {
		t.Fatalf("active: %s", e.Active())
	}
}

func TestEditor_AltDragClones(t *testing.T) {
	e, st, rec := setup(t, rect("x", 10, 10, 100, 50))
	c := drag(t, e, at(20, 20), alt(30, 20), alt(50, 40))
	if c == nil || c.Type() != command.TypeCreate {
		t.Fatalf("expected a create command, got %v", c)
	}
	if st.Len() != 2 {
		t.Fatalf("expected original and clone, len=%d", st.Len())
	}
	if got := position(t, st, "x"); got != geom.Pt(10, 10) {
		t.Fatalf("original must stay put: %+v", got)
	}
	sel := e.Selection()
	if len(sel) != 1 || sel[0] == "x" {
		t.Fatalf("clone should be selected: %v", sel)
	}
	if got := position(t, st, sel[0]); got != geom.Pt(40, 30) {
		t.Fatalf("clone position: %+v", got)
	}
	if rec.Count(bus.DuplicateRequest) != 1 || rec.Count(bus.DuplicateReady) != 1 {
		t.Fatalf("one request and one reply expected")
	}
	if !e.Undo() {
		t.Fatalf("undo failed")
	}
	if st.Len() != 1 {
		t.Fatalf("undo should remove the clone, len=%d", st.Len())
	}
}

func TestEditor_LateDuplicateReplyIsDropped(t *testing.T) {
	st := scene.NewStore()
	_ = st.Add(rect("x", 10, 10, 100, 50))
	opts := DefaultOptions()
	opts.AutoDuplicate = false
	e := New(st, nil, opts)
	defer e.Close()

	var req bus.DuplicateRequestPayload
	e.Bus().Subscribe(bus.DuplicateRequest, func(m bus.Message) { req = m.Payload.(bus.DuplicateRequestPayload) })
	drag(t, e, at(20, 20), alt(30, 20), alt(50, 40))
	if req.RequestID == "" {
		t.Fatalf("no duplicate request seen")
	}
	if got := position(t, st, "x"); got != geom.Pt(40, 30) {
		t.Fatalf("unanswered clone should move the original: %+v", got)
	}
	if _, err := st.Duplicate("x", "late"); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if e.DuplicateReady(bus.DuplicateReadyPayload{RequestID: req.RequestID, OriginalID: "x", NewID: "late"}) {
		t.Fatalf("late reply must be ignored")
	}
	if _, ok := st.Object("late"); ok {
		t.Fatalf("orphan duplicate should be removed")
	}
}

func TestEditor_BoxSelectThenGroupDrag(t *testing.T) {
	e, st, _ := setup(t, rect("a", 0, 0, 10, 10), rect("b", 50, 50, 10, 10), rect("c", 200, 200, 10, 10))
	drag(t, e, at(-5, -5), at(30, 30), at(70, 70))
	if got := e.Selection(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("box selection: %v", got)
	}
	c := drag(t, e, at(6, 6), at(16, 16))
	if c == nil || c.Type() != command.TypeGroupMove {
		t.Fatalf("expected group move, got %v", c)
	}
	if position(t, st, "a") != geom.Pt(10, 10) || position(t, st, "b") != geom.Pt(60, 60) {
		t.Fatalf("group drag: a=%+v b=%+v", position(t, st, "a"), position(t, st, "b"))
	}
	e.Undo()
	if position(t, st, "a") != geom.Pt(0, 0) || position(t, st, "b") != geom.Pt(50, 50) {
		t.Fatalf("group undo: a=%+v b=%+v", position(t, st, "a"), position(t, st, "b"))
	}
}

func TestEditor_ShiftClickTogglesWithoutGesture(t *testing.T) {
	e, _, _ := setup(t, rect("a", 0, 0, 10, 10), rect("b", 50, 50, 10, 10))
	e.Select("a", "b")
	shift := Pointer{X: 53, Y: 53, Mods: transform.Modifiers{Shift: true}}
	if _, err := e.PointerDown(shift); err != nil {
		t.Fatalf("down: %v", err)
	}
	if e.Active() != "none" {
		t.Fatalf("deselecting click should not start a gesture")
	}
	if got := e.Selection(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("selection: %v", got)
	}
}

func TestEditor_ResizeFromHandle(t *testing.T) {
	e, st, _ := setup(t, rect("x", 10, 10, 100, 50))
	e.Select("x")
	c := drag(t, e, at(110, 35), at(130, 35))
	if c == nil || c.Type() != command.TypeResize {
		t.Fatalf("expected resize, got %v", c)
	}
	tr, _ := st.Transform("x")
	if tr.Size != geom.Sz(120, 50) || tr.Position != geom.Pt(10, 10) {
		t.Fatalf("resize: %+v", tr)
	}
}

func TestEditor_ClipboardAndLifecycle(t *testing.T) {
	e, st, _ := setup(t, rect("a", 10, 10, 20, 20), rect("b", 40, 10, 20, 20))
	e.Select("a")
	if _, err := e.CopySelection(); err != nil {
		t.Fatalf("copy: %v", err)
	}
	pasted, err := e.Paste()
	if err != nil || len(pasted) != 1 {
		t.Fatalf("paste: %v %v", pasted, err)
	}
	if got := position(t, st, pasted[0]); got != geom.Pt(20, 20) {
		t.Fatalf("paste offset: %+v", got)
	}
	if _, err := e.Reorder(command.ZBack); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if st.ZIndex(pasted[0]) != 0 {
		t.Fatalf("pasted object should be at the back: %v", st.Order())
	}
	if _, err := e.DeleteSelection(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("delete: len=%d", st.Len())
	}
	e.Undo()
	if st.ZIndex(pasted[0]) != 0 {
		t.Fatalf("undo delete should restore z: %v", st.Order())
	}

	created, err := e.Create(scene.Object{Kind: scene.KindText, Text: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tr, _ := st.Transform(created[0])
	if tr.Size.Width <= 0 || tr.Size.Height <= 0 {
		t.Fatalf("text should be measured: %+v", tr.Size)
	}
	e.SelectAll()
	if len(e.Selection()) != st.Len() {
		t.Fatalf("select all: %v", e.Selection())
	}
	if c, err := e.Reorder(command.ZForward); err != nil || c != nil {
		t.Fatalf("forward of everything changes nothing: %v %v", c, err)
	}
}

func TestEditor_RenameFile(t *testing.T) {
	f := rect("f", 0, 0, 40, 40)
	f.Kind = scene.KindFile
	f.FileName = "a.txt"
	e, st, _ := setup(t, f)
	if _, err := e.RenameFile("f", "b.txt"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if o, _ := st.Object("f"); o.FileName != "b.txt" {
		t.Fatalf("rename: %q", o.FileName)
	}
	e.Undo()
	if o, _ := st.Object("f"); o.FileName != "a.txt" {
		t.Fatalf("undo rename: %q", o.FileName)
	}
	if _, err := e.RenameFile("ghost", "x"); !errors.Is(err, command.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestEditor_GuidesAgainstUnselected(t *testing.T) {
	e, _, _ := setup(t, rect("a", 0, 0, 100, 50), rect("b", 102, 3, 40, 40))
	if m := e.Guides(); len(m.Lines) != 0 {
		t.Fatalf("no selection should report nothing: %+v", m)
	}
	e.Select("b")
	m := e.Guides()
	if m.Offset != geom.Pt(-2, 2) || len(m.Lines) != 2 {
		t.Fatalf("guides: %+v", m)
	}
}

func TestEditor_CreateRejectsExistingID(t *testing.T) {
	e, st, _ := setup(t, rect("a", 10, 10, 20, 20))
	if _, err := e.Create(rect("a", 300, 300, 20, 20)); !errors.Is(err, scene.ErrExists) {
		t.Fatalf("expected scene.ErrExists, got %v", err)
	}
	if got := position(t, st, "a"); got != geom.Pt(10, 10) {
		t.Fatalf("existing object moved: %+v", got)
	}
	if e.History().Len() != 0 || e.Undo() {
		t.Fatalf("a rejected create must not be recorded")
	}
	if _, ok := st.Object("a"); !ok {
		t.Fatalf("existing object removed")
	}
}
