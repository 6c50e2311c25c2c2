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

// Identity is the identity affine transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Translation returns a matrix translating by t.
func Translation(t Point) f64.Aff3 { return f64.Aff3{1, 0, t.X, 0, 1, t.Y} }

// Scaling returns a matrix scaling by (sx, sy) about the origin.
func Scaling(sx, sy float64) f64.Aff3 { return f64.Aff3{sx, 0, 0, 0, sy, 0} }

// Rotation returns a matrix rotating clockwise (y-down) by deg about the origin.
func Rotation(deg float64) f64.Aff3 {
	if deg == 0 {
		return Identity
	}
	s, c := math.Sincos(Radians(deg))
	return f64.Aff3{c, -s, 0, s, c, 0}
}

// Mul returns a*b, i.e. b is applied first.
func Mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply transforms p by m.
func Apply(m f64.Aff3, p Point) Point {
	return Point{X: m[0]*p.X + m[1]*p.Y + m[2], Y: m[3]*p.X + m[4]*p.Y + m[5]}
}

// Invert returns the inverse of m, or false if m is singular.
func Invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 || math.IsNaN(det) {
		return Identity, false
	}
	inv := 1 / det
	a := m[4] * inv
	b := -m[1] * inv
	d := -m[3] * inv
	e := m[0] * inv
	return f64.Aff3{a, b, -(a*m[2] + b*m[5]), d, e, -(d*m[2] + e*m[5])}, true
}

// Viewport maps world coordinates to screen pixels: screen = world*Zoom + Pan.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	Pan  Point   `json:"pan"`
}

// Scale returns the effective zoom, treating an unset zoom as 1.
func (v Viewport) Scale() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v Viewport) Matrix() f64.Aff3 {
	z := v.Scale()
	return f64.Aff3{z, 0, v.Pan.X, 0, z, v.Pan.Y}
}

func (v Viewport) ToScreen(world Point) Point { return Apply(v.Matrix(), world) }

func (v Viewport) ToWorld(screen Point) Point {
	z := v.Scale()
	return Point{X: (screen.X - v.Pan.X) / z, Y: (screen.Y - v.Pan.Y) / z}
}
