/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// resizeDims computes the new width/height for a handle drag expressed in
// box-local axes, applying aspect lock and the minimum size.
func resizeDims(start Size, h Handle, local Point, keepAspect bool, min Size) (w, ht float64) {
	dx, dy := h.Dir()
	w = start.Width + dx*local.X
	ht = start.Height + dy*local.Y
	if keepAspect && start.Width > 0 && start.Height > 0 {
		ratio := start.Width / start.Height
		switch {
		case dx != 0 && dy != 0:
			if math.Abs(w/start.Width-1) >= math.Abs(ht/start.Height-1) {
				ht = w / ratio
			} else {
				w = ht * ratio
			}
		case dx != 0:
			ht = w / ratio
		case dy != 0:
			w = ht * ratio
		}
		if w < min.Width {
			w = min.Width
			ht = w / ratio
		}
		if ht < min.Height {
			ht = min.Height
			w = ht * ratio
		}
		return w, ht
	}
	return math.Max(w, min.Width), math.Max(ht, min.Height)
}

// ResizeRotated resizes a possibly rotated box by dragging its raw handle h
// by worldDelta. The opposite edge or corner stays fixed in world space.
func ResizeRotated(start Snapshot, h Handle, worldDelta Point, keepAspect bool, min Size) Snapshot {
	if !h.IsResize() {
		return start
	}
	local := Rotate(worldDelta, -start.Rotation)
	w, ht := resizeDims(start.Size, h, local, keepAspect, min)
	if NormalizeDegrees(start.Rotation) == 0 {
		b := anchorBox(start.Position, start.Size, h, w, ht)
		return Snapshot{Position: Point{X: b.X, Y: b.Y}, Size: b.Size(), Rotation: start.Rotation}
	}

	dx, dy := h.Dir()
	anchor := start.LocalToWorld(Point{X: -dx * start.Size.Width / 2, Y: -dy * start.Size.Height / 2})
	center := anchor.Sub(Rotate(Point{X: -dx * w / 2, Y: -dy * ht / 2}, start.Rotation))
	return Snapshot{
		Position: center.Sub(Point{X: w / 2, Y: ht / 2}),
		Size:     Size{Width: w, Height: ht},
		Rotation: start.Rotation,
	}
}

// ResizeBox resizes an axis-aligned box by dragging handle h by delta.
// The edge opposite the handle is the anchor; an axis the handle does not
// control stays centred when the aspect lock changes it.
func ResizeBox(start Bounds, h Handle, delta Point, keepAspect bool, min Size) Bounds {
	if !h.IsResize() {
		return start
	}
	w, ht := resizeDims(start.Size(), h, delta, keepAspect, min)
	return anchorBox(Point{X: start.X, Y: start.Y}, start.Size(), h, w, ht)
}

func anchorBox(origin Point, start Size, h Handle, w, ht float64) Bounds {
	dx, dy := h.Dir()
	x := origin.X
	switch {
	case dx < 0:
		x = origin.X + start.Width - w
	case dx == 0 && w != start.Width:
		x = origin.X + (start.Width-w)/2
	}
	y := origin.Y
	switch {
	case dy < 0:
		y = origin.Y + start.Height - ht
	case dy == 0 && ht != start.Height:
		y = origin.Y + (start.Height-ht)/2
	}
	return Bounds{X: x, Y: y, Width: w, Height: ht}
}
