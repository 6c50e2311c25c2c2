/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Handle identifies a transform grip on a selection outline: eight compass
// resize grips plus one rotation grip.
type Handle string

const (
	HandleNone   Handle = ""
	HandleN      Handle = "n"
	HandleNE     Handle = "ne"
	HandleE      Handle = "e"
	HandleSE     Handle = "se"
	HandleS      Handle = "s"
	HandleSW     Handle = "sw"
	HandleW      Handle = "w"
	HandleNW     Handle = "nw"
	HandleRotate Handle = "rotate"
)

// compass lists resize handles clockwise; a quarter turn is two steps.
var compass = [8]Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

// ResizeHandles returns the eight resize handles clockwise from north.
func ResizeHandles() []Handle { return append([]Handle(nil), compass[:]...) }

func (h Handle) index() int {
	for i, c := range compass {
		if c == h {
			return i
		}
	}
	return -1
}

// IsResize reports whether h is one of the eight compass grips.
func (h Handle) IsResize() bool { return h.index() >= 0 }

// IsCorner reports whether h is a diagonal grip.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleNE, HandleSE, HandleSW, HandleNW:
		return true
	}
	return false
}

// Dir returns the unit direction of the handle in box-local axes: -1 means the
// left/top edge moves, +1 the right/bottom edge, 0 the axis is untouched.
func (h Handle) Dir() (dx, dy float64) {
	switch h {
	case HandleN:
		return 0, -1
	case HandleNE:
		return 1, -1
	case HandleE:
		return 1, 0
	case HandleSE:
		return 1, 1
	case HandleS:
		return 0, 1
	case HandleSW:
		return -1, 1
	case HandleW:
		return -1, 0
	case HandleNW:
		return -1, -1
	}
	return 0, 0
}

// QuarterTurns returns the rotation rounded to the nearest multiple of 90°,
// expressed as a count of clockwise quarter turns in [0, 4).
func QuarterTurns(rotationDeg float64) int {
	q := int(math.Round(NormalizeDegrees(rotationDeg) / 90))
	return ((q % 4) + 4) % 4
}

// RemapHandle converts the handle the user sees at a compass position on
// screen into the object's own (unrotated) handle. Once an object is rotated
// past 45° its visually eastern grip is a different raw grip.
func RemapHandle(visual Handle, rotationDeg float64) Handle {
	i := visual.index()
	if i < 0 {
		return visual
	}
	return compass[(i-2*QuarterTurns(rotationDeg)+16)%8]
}

// VisualHandle is the inverse of RemapHandle.
func VisualHandle(local Handle, rotationDeg float64) Handle {
	i := local.index()
	if i < 0 {
		return local
	}
	return compass[(i+2*QuarterTurns(rotationDeg))%8]
}
