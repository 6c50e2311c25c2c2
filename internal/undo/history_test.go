/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gocanvas/internal/bus"
	"gocanvas/internal/command"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

// stub is a non-mergeable command that counts calls.
type stub struct {
	n          int
	ts         time.Time
	executed   int
	undone     int
	failUndo   bool
	failRedo   bool
	panicUndo  bool
	executions int
}

func (s *stub) ID() string           { return fmt.Sprintf("cmd_%d", s.n) }
func (s *stub) Type() command.Type   { return "stub" }
func (s *stub) Timestamp() time.Time { return s.ts }
func (s *stub) Description() string  { return fmt.Sprintf("stub %d", s.n) }
func (s *stub) String() string       { return s.Description() }

func (s *stub) Execute() error {
	s.executions++
	if s.executions > 1 && s.failRedo {
		return errors.New("redo refused")
	}
	s.executed++
	return nil
}

func (s *stub) Undo() error {
	if s.panicUndo {
		panic("boom")
	}
	if s.failUndo {
		return errors.New("undo refused")
	}
	s.undone++
	return nil
}

func (s *stub) CanMergeWith(command.Command) bool { return false }
func (s *stub) MergeWith(command.Command) error   { return command.ErrNotMergeable }

func TestHistory_CursorAndTruncation(t *testing.T) {
	h := New(DefaultConfig(), nil)
	if h.Undo() || h.Redo() {
		t.Fatalf("empty history must not undo or redo")
	}
	a, b, c := &stub{n: 1}, &stub{n: 2}, &stub{n: 3}
	_ = h.Push(a)
	_ = h.Push(b)
	if h.Len() != 2 || h.CurrentIndex() != 1 || !h.CanUndo() || h.CanRedo() {
		t.Fatalf("after two pushes: len=%d cur=%d", h.Len(), h.CurrentIndex())
	}
	if !h.Undo() || b.undone != 1 || h.CurrentIndex() != 0 || !h.CanRedo() {
		t.Fatalf("undo: cur=%d undone=%d", h.CurrentIndex(), b.undone)
	}
	_ = h.Push(c)
	if h.Len() != 2 || h.CanRedo() {
		t.Fatalf("push after undo must drop the redo tail: len=%d", h.Len())
	}
	if got := h.Descriptions(); got[0] != "stub 1" || got[1] != "stub 3" {
		t.Fatalf("descriptions: %v", got)
	}
	if !h.Undo() || !h.Undo() || h.Undo() {
		t.Fatalf("expected exactly two undos")
	}
	if h.CurrentIndex() != -1 {
		t.Fatalf("cursor: %d", h.CurrentIndex())
	}
	if !h.Redo() || a.executed != 2 {
		t.Fatalf("redo should re-execute a: %d", a.executed)
	}
}

func TestHistory_BoundEvictsOldest(t *testing.T) {
	h := New(Config{MaxSize: 50, MergeWindow: time.Second}, nil)
	var all []*stub
	for i := 0; i < 60; i++ {
		s := &stub{n: i}
		all = append(all, s)
		if err := h.Push(s); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if h.Len() != 50 || h.CurrentIndex() != 49 {
		t.Fatalf("len=%d cur=%d", h.Len(), h.CurrentIndex())
	}
	entries := h.Entries()
	if entries[0] != all[10] || entries[49] != all[59] {
		t.Fatalf("oldest ten should be evicted: first=%s last=%s", entries[0].ID(), entries[49].ID())
	}
	for h.Undo() {
	}
	if all[9].undone != 0 || all[10].undone != 1 {
		t.Fatalf("evicted entries must not be undone")
	}
}

func TestHistory_MergeIdempotence(t *testing.T) {
	doc := scene.NewStore()
	start := geom.Snapshot{Position: geom.Pt(10, 10), Size: geom.Sz(100, 50)}
	_ = doc.Add(scene.Object{ID: "x", Kind: scene.KindRect, Transform: start})
	h := New(DefaultConfig(), nil)

	t0 := time.Unix(1000, 0)
	prev := start
	for i := 1; i <= 8; i++ {
		next := prev
		next.Position = prev.Position.Add(geom.Pt(3, 2))
		m, err := command.NewMove(doc, "x", prev, next, command.At(t0.Add(time.Duration(i)*300*time.Millisecond)))
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if err := h.Push(m); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
		prev = next
	}
	if h.Len() != 1 {
		t.Fatalf("chained moves should merge into one entry, len=%d", h.Len())
	}
	if got, _ := doc.Transform("x"); got.Position != geom.Pt(34, 26) {
		t.Fatalf("position after moves: %+v", got.Position)
	}
	if !h.Undo() {
		t.Fatalf("undo failed")
	}
	if got, _ := doc.Transform("x"); got != start {
		t.Fatalf("single undo should restore the start: %+v", got)
	}
}

func TestHistory_MergeWindowAndTarget(t *testing.T) {
	doc := scene.NewStore()
	s := geom.Snapshot{Size: geom.Sz(10, 10)}
	_ = doc.Add(scene.Object{ID: "a", Transform: s}, scene.Object{ID: "b", Transform: s})
	h := New(DefaultConfig(), nil)
	t0 := time.Unix(0, 0)
	moved := s
	moved.Position = geom.Pt(1, 1)

	m1, _ := command.NewMove(doc, "a", s, moved, command.At(t0))
	m2, _ := command.NewMove(doc, "a", moved, s, command.At(t0.Add(1500*time.Millisecond)))
	m3, _ := command.NewMove(doc, "b", s, moved, command.At(t0.Add(1600*time.Millisecond)))
	_ = h.Push(m1)
	_ = h.Push(m2)
	_ = h.Push(m3)
	if h.Len() != 3 {
		t.Fatalf("late or cross-object moves must not merge, len=%d", h.Len())
	}
}

func TestHistory_FailuresKeepCursor(t *testing.T) {
	h := New(DefaultConfig(), nil)
	a := &stub{n: 1, failUndo: true}
	_ = h.Push(a)
	if h.Undo() {
		t.Fatalf("failing undo must report false")
	}
	if h.CurrentIndex() != 0 || h.Replaying() {
		t.Fatalf("cursor=%d replay=%v", h.CurrentIndex(), h.Replaying())
	}

	p := &stub{n: 2, panicUndo: true}
	_ = h.Push(p)
	if h.Undo() {
		t.Fatalf("panicking undo must report false")
	}
	if h.CurrentIndex() != 1 || h.Replaying() {
		t.Fatalf("after panic cursor=%d replay=%v", h.CurrentIndex(), h.Replaying())
	}

	h.Clear()
	r := &stub{n: 3, failRedo: true}
	_ = h.Push(r)
	if !h.Undo() {
		t.Fatalf("undo should succeed")
	}
	if h.Redo() {
		t.Fatalf("failing redo must report false")
	}
	if h.CurrentIndex() != -1 || !h.CanRedo() {
		t.Fatalf("redo failure should roll the cursor back: %d", h.CurrentIndex())
	}
}

// replaying pushes from inside an undo, as a command with side effects might.
type replaying struct {
	stub
	h     *History
	inner *stub
}

func (r *replaying) Undo() error { return r.h.Push(r.inner) }

func TestHistory_ReplayGuard(t *testing.T) {
	h := New(DefaultConfig(), nil)
	inner := &stub{n: 9}
	r := &replaying{stub: stub{n: 1}, h: h, inner: inner}
	_ = h.Push(r)
	if !h.Undo() {
		t.Fatalf("undo failed")
	}
	if inner.executed != 1 {
		t.Fatalf("nested push should still execute")
	}
	if h.Len() != 1 {
		t.Fatalf("nested push during replay must not record, len=%d", h.Len())
	}
}

func TestHistory_PublishesChanges(t *testing.T) {
	b := bus.New()
	rec := bus.Record(b)
	defer rec.Stop()
	h := New(DefaultConfig(), b)
	_ = h.Push(&stub{n: 1})
	h.Undo()
	if rec.Count(bus.HistoryChange) != 2 {
		t.Fatalf("expected two history notifications, got %d", rec.Count(bus.HistoryChange))
	}
	last, ok := rec.Last(bus.HistoryChange)
	if !ok {
		t.Fatalf("no notification")
	}
	p := last.Payload.(bus.HistoryPayload)
	if p.CurrentIndex != -1 || p.CanUndo || !p.CanRedo || p.Length != 1 {
		t.Fatalf("payload: %+v", p)
	}
}

func TestHistory_FailedGroupUndoLeavesCanvas(t *testing.T) {
	st := scene.NewStore()
	for _, id := range []string{"a", "b"} {
		if err := st.Add(scene.Object{ID: id, Kind: scene.KindRect, Transform: geom.Snapshot{Size: geom.Sz(10, 10)}}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	before := map[string]geom.Snapshot{"a": {Size: geom.Sz(10, 10)}, "b": {Size: geom.Sz(10, 10)}}
	after := map[string]geom.Snapshot{
		"a": {Position: geom.Pt(100, 0), Size: geom.Sz(10, 10)},
		"b": {Position: geom.Pt(100, 50), Size: geom.Sz(10, 10)},
	}
	c, err := command.NewGroupMove(st, []string{"a", "b"}, before, after)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h := New(DefaultConfig(), nil)
	if err := h.Push(c); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, _, err := st.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if h.Undo() {
		t.Fatalf("undo should fail with a member missing")
	}
	if h.CurrentIndex() != 0 {
		t.Fatalf("cursor moved: %d", h.CurrentIndex())
	}
	if tr, _ := st.Transform("a"); tr.Position != geom.Pt(100, 0) {
		t.Fatalf("a changed by a failed undo: %+v", tr.Position)
	}
}
