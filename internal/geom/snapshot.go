/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Snapshot captures an object's transform: Position is the top-left corner of
// the unrotated box and Rotation (degrees, clockwise on a y-down canvas) is
// applied about the box centre.
type Snapshot struct {
	Position Point   `json:"position"`
	Size     Size    `json:"size"`
	Rotation float64 `json:"rotation"`
}

func (s Snapshot) Center() Point { return s.Position.Add(s.Size.Half()) }

// Matrix maps box-local coordinates (origin at the unrotated top-left) into
// world coordinates.
func (s Snapshot) Matrix() f64.Aff3 {
	c := s.Center()
	h := s.Size.Half()
	return Mul(Translation(c), Mul(Rotation(s.Rotation), Translation(Point{X: -h.X, Y: -h.Y})))
}

// LocalToWorld maps an offset from the box centre, in box axes, to world space.
func (s Snapshot) LocalToWorld(offset Point) Point {
	return s.Center().Add(Rotate(offset, s.Rotation))
}

// WorldToLocal is the inverse of LocalToWorld.
func (s Snapshot) WorldToLocal(p Point) Point {
	return Rotate(p.Sub(s.Center()), -s.Rotation)
}

// Corners returns the rotated corners clockwise from the top-left.
func (s Snapshot) Corners() [4]Point {
	h := s.Size.Half()
	return [4]Point{
		s.LocalToWorld(Point{X: -h.X, Y: -h.Y}),
		s.LocalToWorld(Point{X: h.X, Y: -h.Y}),
		s.LocalToWorld(Point{X: h.X, Y: h.Y}),
		s.LocalToWorld(Point{X: -h.X, Y: h.Y}),
	}
}

// Bounds returns the axis-aligned box enclosing the rotated shape.
func (s Snapshot) Bounds() Bounds {
	if NormalizeDegrees(s.Rotation) == 0 {
		return B(s.Position.X, s.Position.Y, s.Size.Width, s.Size.Height)
	}
	c := s.Corners()
	b, _ := Enclose(c[:]...)
	return b
}

// Contains reports whether world point p lies inside the rotated box.
func (s Snapshot) Contains(p Point) bool {
	l := s.WorldToLocal(p)
	h := s.Size.Half()
	return math.Abs(l.X) <= h.X && math.Abs(l.Y) <= h.Y
}

// HandlePosition returns the world position of a raw (box-local) handle.
// The rotate handle sits offset above the north edge.
func (s Snapshot) HandlePosition(h Handle, rotateOffset float64) Point {
	half := s.Size.Half()
	if h == HandleRotate {
		return s.LocalToWorld(Point{Y: -half.Y - rotateOffset})
	}
	dx, dy := h.Dir()
	return s.LocalToWorld(Point{X: dx * half.X, Y: dy * half.Y})
}

// WithCenter returns s moved so its centre is c.
func (s Snapshot) WithCenter(c Point) Snapshot {
	s.Position = c.Sub(s.Size.Half())
	return s
}
