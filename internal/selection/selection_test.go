/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package selection

import (
	"testing"

	"gocanvas/internal/geom"
)

func TestAddRemove_Empty(t *testing.T) {
	m := New()
	m.Add("a")
	m.Remove("a")
	if m.Size() != 0 {
		t.Fatalf("expected empty selection, got %d", m.Size())
	}
}

func TestAdd_NoDuplicates(t *testing.T) {
	m := New()
	m.Add("a")
	m.Add("a")
	if m.Size() != 1 {
		t.Fatalf("duplicate add grew the set: %d", m.Size())
	}
}

func TestToggleTwice_Unchanged(t *testing.T) {
	m := New()
	m.Add("x")
	m.Add("y")
	before := m.IDs()
	if on := m.Toggle("z"); !on {
		t.Fatalf("first toggle should select")
	}
	if on := m.Toggle("z"); on {
		t.Fatalf("second toggle should deselect")
	}
	if !sameMembers(before, m.IDs()) {
		t.Fatalf("toggle twice changed selection: %v -> %v", before, m.IDs())
	}
}

func TestComputeBounds(t *testing.T) {
	m := New()
	if _, ok := m.ComputeBounds(func(string) (geom.Bounds, bool) { return geom.Bounds{}, true }); ok {
		t.Fatalf("empty selection must have no bounds")
	}
	boxes := map[string]geom.Bounds{
		"a": geom.B(0, 0, 10, 10),
		"b": geom.B(50, 20, 10, 30),
	}
	lookup := func(id string) (geom.Bounds, bool) { b, ok := boxes[id]; return b, ok }
	m.Add("a")
	m.Add("b")
	m.Add("ghost")
	got, ok := m.ComputeBounds(lookup)
	if !ok || got != geom.B(0, 0, 60, 50) {
		t.Fatalf("bounds: %+v ok=%v", got, ok)
	}
	only := New()
	only.Add("ghost")
	if _, ok := only.ComputeBounds(lookup); ok {
		t.Fatalf("no member contributed: expected no bounds")
	}
}

func TestOnChange_Notifications(t *testing.T) {
	m := New()
	var got []Change
	m.OnChange = func(c Change) { got = append(got, c) }
	m.Add("a")
	m.Add("a")
	m.Remove("missing")
	m.Set([]string{"b", "c", "b"})
	m.Set([]string{"c", "b"})
	m.Clear()
	m.Clear()
	if len(got) != 3 {
		t.Fatalf("expected 3 changes, got %d: %+v", len(got), got)
	}
	if got[0].Op != OpAdd || got[1].Op != OpSet || got[2].Op != OpClear {
		t.Fatalf("unexpected ops: %+v", got)
	}
	if len(got[1].IDs) != 2 || len(got[2].IDs) != 2 {
		t.Fatalf("unexpected ids: %+v", got)
	}
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	m := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		m.Add(id)
	}
	m.Remove("b")
	m.Remove("c")
	if !m.Has("d") || m.Has("b") {
		t.Fatalf("membership wrong after removes: %v", m.IDs())
	}
	m.Remove("d")
	if ids := m.IDs(); len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("ids: %v", ids)
	}
	if id, ok := m.Single(); !ok || id != "a" {
		t.Fatalf("single: %q %v", id, ok)
	}
}
