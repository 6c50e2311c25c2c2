/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guides finds alignment lines between a moving box and the boxes
// around it. It only reports; callers decide whether to snap.
package guides

import (
	"math"

	"gocanvas/internal/geom"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Kind tells which features lined up.
type Kind string

const (
	KindEdge   Kind = "edge"
	KindCenter Kind = "center"
)

// Options controls which candidates count and how close they must be.
type Options struct {
	// Threshold is the maximum world distance for a match. Zero means 6.
	Threshold float64
	Edges     bool
	Centers   bool
}

// DefaultOptions matches edges and centers within 6 units.
func DefaultOptions() Options { return Options{Threshold: 6, Edges: true, Centers: true} }

// Line is a guide to render. Position is x for vertical lines and y for
// horizontal ones; From and To span both boxes involved.
type Line struct {
	Orientation Orientation `json:"orientation"`
	Kind        Kind        `json:"kind"`
	Position    float64     `json:"position"`
	From        geom.Point  `json:"from"`
	To          geom.Point  `json:"to"`
}

// Match is the outcome of Compute. Offset is what the moving box would have
// to shift by to sit exactly on the reported lines.
type Match struct {
	Offset geom.Point `json:"offset"`
	Lines  []Line     `json:"lines"`
}

type best struct {
	delta float64
	dist  float64
	line  Line
	ok    bool
}

func (b *best) consider(delta, threshold float64, l Line) {
	d := math.Abs(delta)
	if d > threshold {
		return
	}
	if !b.ok || d < b.dist {
		*b = best{delta: delta, dist: d, line: l, ok: true}
	}
}

// Compute checks moving against every anchor, independently per axis, and
// keeps the closest candidate on each.
func Compute(moving geom.Bounds, anchors []geom.Bounds, opts Options) Match {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var bx, by best
	mc := moving.Center()
	for _, a := range anchors {
		ac := a.Center()
		if opts.Edges {
			for _, c := range [][2]float64{
				{moving.X, a.X},
				{moving.Right(), a.Right()},
				{moving.X, a.Right()},
				{moving.Right(), a.X},
			} {
				bx.consider(c[0]-c[1], opts.Threshold, vertical(c[1], moving, a, KindEdge))
			}
			for _, c := range [][2]float64{
				{moving.Y, a.Y},
				{moving.Bottom(), a.Bottom()},
				{moving.Y, a.Bottom()},
				{moving.Bottom(), a.Y},
			} {
				by.consider(c[0]-c[1], opts.Threshold, horizontal(c[1], moving, a, KindEdge))
			}
		}
		if opts.Centers {
			bx.consider(mc.X-ac.X, opts.Threshold, vertical(ac.X, moving, a, KindCenter))
			by.consider(mc.Y-ac.Y, opts.Threshold, horizontal(ac.Y, moving, a, KindCenter))
		}
	}
	var m Match
	if bx.ok {
		m.Offset.X = geom.Round(-bx.delta, 3)
		m.Lines = append(m.Lines, bx.line)
	}
	if by.ok {
		m.Offset.Y = geom.Round(-by.delta, 3)
		m.Lines = append(m.Lines, by.line)
	}
	return m
}

func vertical(x float64, a, b geom.Bounds, k Kind) Line {
	x = geom.Round(x, 3)
	return Line{
		Orientation: Vertical,
		Kind:        k,
		Position:    x,
		From:        geom.Pt(x, math.Min(a.Y, b.Y)),
		To:          geom.Pt(x, math.Max(a.Bottom(), b.Bottom())),
	}
}

func horizontal(y float64, a, b geom.Bounds, k Kind) Line {
	y = geom.Round(y, 3)
	return Line{
		Orientation: Horizontal,
		Kind:        k,
		Position:    y,
		From:        geom.Pt(math.Min(a.X, b.X), y),
		To:          geom.Pt(math.Max(a.Right(), b.Right()), y),
	}
}
