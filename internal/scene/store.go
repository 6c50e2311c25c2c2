/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"slices"

	"gocanvas/internal/geom"
)

// Store is an in-memory Document. It is owned by a single event loop and is
// not safe for concurrent use.
type Store struct {
	order    []string
	objects  map[string]*Object
	viewport geom.Viewport
}

func NewStore() *Store {
	return &Store{objects: map[string]*Object{}, viewport: geom.Viewport{Zoom: 1}}
}

// Add appends objects on top of the z-order.
func (s *Store) Add(objs ...Object) error {
	for _, o := range objs {
		if err := s.Insert(o, -1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Len() int { return len(s.order) }

func (s *Store) Transform(id string) (geom.Snapshot, bool) {
	o, ok := s.objects[id]
	if !ok {
		return geom.Snapshot{}, false
	}
	return o.Transform, true
}

func (s *Store) Bounds(id string) (geom.Bounds, bool) {
	o, ok := s.objects[id]
	if !ok {
		return geom.Bounds{}, false
	}
	return o.Bounds(), true
}

func (s *Store) Object(id string) (Object, bool) {
	o, ok := s.objects[id]
	if !ok {
		return Object{}, false
	}
	return o.Clone(), true
}

func (s *Store) Objects() []Object {
	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id].Clone())
	}
	return out
}

func (s *Store) Viewport() geom.Viewport { return s.viewport }

func (s *Store) SetViewport(v geom.Viewport) { s.viewport = v }

func (s *Store) SetTransform(id string, t geom.Snapshot) error {
	o, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("set transform %q: %w", id, ErrNotFound)
	}
	t.Rotation = geom.NormalizeDegrees(t.Rotation)
	o.Transform = t
	return nil
}

func (s *Store) Insert(obj Object, z int) error {
	if obj.ID == "" {
		return fmt.Errorf("insert: empty id: %w", ErrNotFound)
	}
	if _, ok := s.objects[obj.ID]; ok {
		return fmt.Errorf("insert %q: %w", obj.ID, ErrExists)
	}
	c := obj.Clone()
	c.Transform.Rotation = geom.NormalizeDegrees(c.Transform.Rotation)
	s.objects[obj.ID] = &c
	if z < 0 || z >= len(s.order) {
		s.order = append(s.order, obj.ID)
	} else {
		s.order = slices.Insert(s.order, z, obj.ID)
	}
	return nil
}

func (s *Store) Remove(id string) (Object, int, error) {
	o, ok := s.objects[id]
	if !ok {
		return Object{}, -1, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	z := slices.Index(s.order, id)
	s.order = slices.Delete(s.order, z, z+1)
	delete(s.objects, id)
	return *o, z, nil
}

func (s *Store) Order() []string { return slices.Clone(s.order) }

// ZIndex returns the z position of id, or -1.
func (s *Store) ZIndex(id string) int { return slices.Index(s.order, id) }

func (s *Store) SetOrder(ids []string) error {
	if len(ids) != len(s.order) {
		return fmt.Errorf("set order: got %d ids, have %d objects", len(ids), len(s.order))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.objects[id]; !ok || seen[id] {
			return fmt.Errorf("set order: %q: %w", id, ErrNotFound)
		}
		seen[id] = true
	}
	s.order = slices.Clone(ids)
	return nil
}

func (s *Store) SetFileName(id, name string) error {
	o, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("set file name %q: %w", id, ErrNotFound)
	}
	o.FileName = name
	return nil
}

// Duplicate copies id to newID directly above the original, keeping its
// transform. The caller positions the copy.
func (s *Store) Duplicate(id, newID string) (Object, error) {
	o, ok := s.objects[id]
	if !ok {
		return Object{}, fmt.Errorf("duplicate %q: %w", id, ErrNotFound)
	}
	c := o.Clone()
	c.ID = newID
	if err := s.Insert(c, s.ZIndex(id)+1); err != nil {
		return Object{}, err
	}
	return c, nil
}
