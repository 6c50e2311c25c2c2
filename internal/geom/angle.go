/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	if m >= 360 {
		m = 0
	}
	return m
}

// DeltaDegrees returns the signed shortest rotation from -> to, in (-180, 180].
func DeltaDegrees(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// SnapDegrees rounds deg to the nearest multiple of step. A non-positive step
// disables snapping.
func SnapDegrees(deg, step float64) float64 {
	if step <= 0 {
		return deg
	}
	return math.Round(deg/step) * step
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// AngleDegrees is atan2 from center to p, in degrees.
func AngleDegrees(center, p Point) float64 {
	return Degrees(math.Atan2(p.Y-center.Y, p.X-center.X))
}

// Rotate applies the standard 2D rotation matrix to v.
//
//	| cos -sin |
//	| sin  cos |
func Rotate(v Point, deg float64) Point {
	if deg == 0 {
		return v
	}
	s, c := math.Sincos(Radians(deg))
	return Point{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// RotateAround rotates p about center by deg.
func RotateAround(p, center Point, deg float64) Point {
	return center.Add(Rotate(p.Sub(center), deg))
}
