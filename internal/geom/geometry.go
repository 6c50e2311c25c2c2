/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom holds the pure geometry used by selection, hit-testing and the
// transform controllers. Everything here is deterministic and side-effect free.
//
// Coordinates are world space unless a name says otherwise. Y grows downwards
// and positive rotation is clockwise on screen.
package geom

import "math"

// Point is a 2D point or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point          { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point          { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point        { return Point{p.X * s, p.Y * s} }
func (p Point) Scale(sx, sy float64) Point { return Point{p.X * sx, p.Y * sy} }

// Len returns the euclidean length of p seen as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// Half returns the vector from a box's top-left corner to its centre.
func (s Size) Half() Point { return Point{s.Width / 2, s.Height / 2} }

// Bounds is an axis-aligned rectangle in world coordinates.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// B is shorthand for Bounds{x, y, w, h}.
func B(x, y, w, h float64) Bounds { return Bounds{X: x, Y: y, Width: w, Height: h} }

// BoundsFromCorners returns the rectangle spanned by two arbitrary corners.
func BoundsFromCorners(a, b Point) Bounds {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (r Bounds) Min() Point      { return Point{r.X, r.Y} }
func (r Bounds) Max() Point      { return Point{r.X + r.Width, r.Y + r.Height} }
func (r Bounds) Right() float64  { return r.X + r.Width }
func (r Bounds) Bottom() float64 { return r.Y + r.Height }
func (r Bounds) Size() Size      { return Size{r.Width, r.Height} }

// Center returns the centre point of the rectangle.
func (r Bounds) Center() Point { return Point{r.X + r.Width/2, r.Y + r.Height/2} }

// Contains reports whether p lies inside r; edges count as inside.
func (r Bounds) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.Right() && p.Y <= r.Bottom()
}

// Union returns the minimal rectangle containing both.
func (r Bounds) Union(o Bounds) Bounds {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersects is the separating-axis test for two axis-aligned rectangles:
// they overlap unless one lies entirely left, right, above or below the other.
// Touching edges count as overlap.
func (r Bounds) Intersects(o Bounds) bool {
	return !(o.X > r.Right() || o.Right() < r.X || o.Y > r.Bottom() || o.Bottom() < r.Y)
}

// Corners returns the four corners clockwise from the top-left.
func (r Bounds) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
}

// Enclose returns the axis-aligned box around pts. The second result is false
// when pts is empty.
func Enclose(pts ...Point) (Bounds, bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// DistanceToSegment returns the distance from p to the segment ab. A
// zero-length segment degrades to the distance between p and a.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	proj := a.Add(ab.Mul(t))
	return p.Sub(proj).Len()
}

// DistanceToPolyline returns the smallest distance from p to any consecutive
// segment of pts. A single point is treated as a degenerate segment; an empty
// path reports +Inf.
func DistanceToPolyline(p Point, pts []Point) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Sub(pts[0]).Len()
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(pts); i++ {
		if d := DistanceToSegment(p, pts[i], pts[i+1]); d < best {
			best = d
		}
	}
	return best
}

// Round rounds v to n decimal places.
func Round(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
