/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package selection holds the set of currently selected object ids.
package selection

import "gocanvas/internal/geom"

// Op names a selection change.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpSet    Op = "set"
)

// Change describes one mutation of a Model.
type Change struct {
	Op  Op       `json:"op"`
	IDs []string `json:"ids"`
}

// BoundsLookup resolves an object's axis-aligned bounds; false means the
// object has no resolvable bounds.
type BoundsLookup func(id string) (geom.Bounds, bool)

// Model is an unordered set of ids without duplicates. It keeps insertion
// order internally so snapshots are deterministic. Not safe for concurrent use.
type Model struct {
	ids   []string
	index map[string]int

	// OnChange, when set, is called after every mutation that changed the set.
	OnChange func(Change)
}

func New() *Model { return &Model{index: map[string]int{}} }

func (m *Model) notify(op Op, ids ...string) {
	if m.OnChange != nil {
		m.OnChange(Change{Op: op, IDs: ids})
	}
}

func (m *Model) insert(id string) bool {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if _, ok := m.index[id]; ok {
		return false
	}
	m.index[id] = len(m.ids)
	m.ids = append(m.ids, id)
	return true
}

func (m *Model) delete(id string) bool {
	i, ok := m.index[id]
	if !ok {
		return false
	}
	m.ids = append(m.ids[:i], m.ids[i+1:]...)
	delete(m.index, id)
	for j := i; j < len(m.ids); j++ {
		m.index[m.ids[j]] = j
	}
	return true
}

// Add inserts id; adding a present id is a no-op.
func (m *Model) Add(id string) {
	if m.insert(id) {
		m.notify(OpAdd, id)
	}
}

// Remove drops id if present.
func (m *Model) Remove(id string) {
	if m.delete(id) {
		m.notify(OpRemove, id)
	}
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is selected afterwards.
func (m *Model) Toggle(id string) bool {
	if m.Has(id) {
		m.Remove(id)
		return false
	}
	m.Add(id)
	return true
}

// Clear empties the selection.
func (m *Model) Clear() {
	if len(m.ids) == 0 {
		return
	}
	removed := m.IDs()
	m.ids = nil
	m.index = map[string]int{}
	m.notify(OpClear, removed...)
}

// Set replaces the whole selection with ids (duplicates collapse).
func (m *Model) Set(ids []string) {
	prev := m.IDs()
	m.ids = nil
	m.index = map[string]int{}
	for _, id := range ids {
		m.insert(id)
	}
	if !sameMembers(prev, m.ids) {
		m.notify(OpSet, m.IDs()...)
	}
}

func (m *Model) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

func (m *Model) Size() int { return len(m.ids) }

// IDs returns a copy of the selected ids.
func (m *Model) IDs() []string { return append([]string(nil), m.ids...) }

// Single returns the only selected id when exactly one object is selected.
func (m *Model) Single() (string, bool) {
	if len(m.ids) != 1 {
		return "", false
	}
	return m.ids[0], true
}

// ComputeBounds returns the minimal rectangle enclosing every member whose
// bounds resolve. Members without bounds are skipped; false means nothing
// contributed (including the empty selection).
func (m *Model) ComputeBounds(lookup BoundsLookup) (geom.Bounds, bool) {
	var out geom.Bounds
	found := false
	for _, id := range m.ids {
		b, ok := lookup(id)
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
