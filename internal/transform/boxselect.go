/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"gocanvas/internal/bus"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
	"gocanvas/internal/selection"
)

// BoxSelect drives a rubber-band selection. Every object whose bounds
// intersect the band is selected; with Shift or Ctrl the result is added to
// the selection that existed when the gesture began.
type BoxSelect struct {
	backend scene.Backend
	sel     *selection.Model
	bus     *bus.Bus
	state   State
	start   geom.Point
	last    geom.Point
	mods    Modifiers
	prior   []string
	rect    geom.Bounds
}

func NewBoxSelect(backend scene.Backend, sel *selection.Model, b *bus.Bus) *BoxSelect {
	return &BoxSelect{backend: backend, sel: sel, bus: b}
}

func (s *BoxSelect) State() State { return s.state }

// Rect returns the current band.
func (s *BoxSelect) Rect() geom.Bounds { return s.rect }

func (s *BoxSelect) Start(p geom.Point, mods Modifiers) error {
	if s.state != Idle {
		return ErrGestureActive
	}
	s.state = Active
	s.start, s.last = p, p
	s.mods = mods
	s.prior = s.sel.IDs()
	s.rect = geom.BoundsFromCorners(p, p)
	s.bus.Publish(bus.BoxSelectStart, bus.BoxSelectPayload{Rect: s.rect, IDs: s.prior})
	return nil
}

func (s *BoxSelect) Update(p geom.Point, mods Modifiers) {
	if s.state != Active {
		return
	}
	s.last, s.mods = p, mods
	ids := s.run()
	s.bus.Publish(bus.BoxSelectUpdate, bus.BoxSelectPayload{Rect: s.rect, IDs: ids})
}

// End re-runs the intersection once more and removes the band.
func (s *BoxSelect) End() ([]string, error) {
	if s.state != Active {
		return nil, ErrNotActive
	}
	ids := s.run()
	s.state = Idle
	s.prior = nil
	s.bus.Publish(bus.BoxSelectEnd, bus.BoxSelectPayload{Rect: s.rect, IDs: ids})
	s.rect = geom.Bounds{}
	return ids, nil
}

func (s *BoxSelect) run() []string {
	s.rect = geom.BoundsFromCorners(s.start, s.last)
	var next []string
	if s.mods.Additive() {
		next = append(next, s.prior...)
	}
	for _, o := range s.backend.Objects() {
		if o.Bounds().Intersects(s.rect) {
			next = append(next, o.ID)
		}
	}
	s.sel.Set(next)
	return s.sel.IDs()
}
