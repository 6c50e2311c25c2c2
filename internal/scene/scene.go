/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene describes the canvas document the selection and transform
// engine operates on: the objects, the query contract used by controllers and
// hit-testing, the mutation contract used by commands, and an in-memory Store
// implementing both.
package scene

import (
	"errors"

	"gocanvas/internal/geom"
)

var (
	ErrNotFound = errors.New("scene: object not found")
	ErrExists   = errors.New("scene: object already exists")
)

// Kind is the object type tag.
type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindFile    Kind = "file"
	KindInk     Kind = "ink"
	KindLine    Kind = "line"
)

// IsStroke reports whether objects of this kind are hit-tested along their path.
func (k Kind) IsStroke() bool { return k == KindInk || k == KindLine }

// Style holds render attributes the engine needs for hit-testing and text sizing.
type Style struct {
	Fill      string  `json:"fill,omitempty"`
	Stroke    string  `json:"stroke,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
	FontSize  float64 `json:"fontSize,omitempty"`
}

// Object is one canvas item.
//
// Points (ink and line objects) are box-local coordinates measured from the
// unrotated top-left corner at the object's Base size; they stretch with the
// box when it is resized.
type Object struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Name      string        `json:"name,omitempty"`
	FileName  string        `json:"fileName,omitempty"`
	Text      string        `json:"text,omitempty"`
	Transform geom.Snapshot `json:"transform"`
	Style     Style         `json:"style,omitempty"`
	Points    []geom.Point  `json:"points,omitempty"`
	Base      geom.Size     `json:"base,omitempty"`
}

// Clone returns a deep copy.
func (o Object) Clone() Object {
	if o.Points != nil {
		o.Points = append([]geom.Point(nil), o.Points...)
	}
	return o
}

func (o Object) Bounds() geom.Bounds { return o.Transform.Bounds() }

// WorldPoints maps the stroke path into world coordinates.
func (o Object) WorldPoints() []geom.Point {
	if len(o.Points) == 0 {
		return nil
	}
	sx, sy := 1.0, 1.0
	if o.Base.Width > 0 {
		sx = o.Transform.Size.Width / o.Base.Width
	}
	if o.Base.Height > 0 {
		sy = o.Transform.Size.Height / o.Base.Height
	}
	m := geom.Mul(o.Transform.Matrix(), geom.Scaling(sx, sy))
	out := make([]geom.Point, len(o.Points))
	for i, p := range o.Points {
		out[i] = geom.Apply(m, p)
	}
	return out
}

// Backend is the query side of the rendering collaborator.
type Backend interface {
	// Transform returns the object's position, size and rotation.
	Transform(id string) (geom.Snapshot, bool)
	// Bounds returns the axis-aligned world bounds of the (possibly rotated) object.
	Bounds(id string) (geom.Bounds, bool)
	// Object returns a copy of the object.
	Object(id string) (Object, bool)
	// Objects returns copies of every object in z-order, bottom first.
	Objects() []Object
	// Viewport returns the current zoom and pan.
	Viewport() geom.Viewport
}

// Document is the mutation side used by commands.
type Document interface {
	Backend
	SetTransform(id string, s geom.Snapshot) error
	// Insert places obj at z-index z; a negative or out-of-range z appends on top.
	Insert(obj Object, z int) error
	// Remove deletes the object and reports the z-index it occupied.
	Remove(id string) (Object, int, error)
	// Order returns ids in z-order, bottom first.
	Order() []string
	// SetOrder rearranges the existing objects; ids must be a permutation of Order.
	SetOrder(ids []string) error
	SetFileName(id, name string) error
}
