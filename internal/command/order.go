/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import (
	"fmt"
	"slices"

	"gocanvas/internal/scene"
)

// ZOp is a z-order change.
type ZOp string

const (
	ZFront    ZOp = "front"
	ZBack     ZOp = "back"
	ZForward  ZOp = "forward"
	ZBackward ZOp = "backward"
)

func ParseZOp(s string) (ZOp, error) {
	switch op := ZOp(s); op {
	case ZFront, ZBack, ZForward, ZBackward:
		return op, nil
	}
	return "", fmt.Errorf("unknown z-order op %q", s)
}

func (op ZOp) verb() string {
	switch op {
	case ZFront:
		return "Bring to front"
	case ZBack:
		return "Send to back"
	case ZForward:
		return "Bring forward"
	default:
		return "Send backward"
	}
}

// Reorder returns order with the members of moved shifted by op. Members
// keep their relative order. order is not modified.
func Reorder(order []string, moved map[string]bool, op ZOp) []string {
	out := slices.Clone(order)
	switch op {
	case ZFront:
		rest := slices.DeleteFunc(slices.Clone(out), func(id string) bool { return moved[id] })
		sel := slices.DeleteFunc(out, func(id string) bool { return !moved[id] })
		return append(rest, sel...)
	case ZBack:
		rest := slices.DeleteFunc(slices.Clone(out), func(id string) bool { return moved[id] })
		sel := slices.DeleteFunc(out, func(id string) bool { return !moved[id] })
		return append(sel, rest...)
	case ZForward:
		for i := len(out) - 2; i >= 0; i-- {
			if moved[out[i]] && !moved[out[i+1]] {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	case ZBackward:
		for i := 1; i < len(out); i++ {
			if moved[out[i]] && !moved[out[i-1]] {
				out[i], out[i-1] = out[i-1], out[i]
			}
		}
	}
	return out
}

// ReorderZ moves one object within the z-order.
type ReorderZ struct {
	base
	doc      scene.Document
	target   string
	op       ZOp
	from, to int
}

func NewReorderZ(doc scene.Document, id string, op ZOp, opts ...Option) (*ReorderZ, error) {
	order := doc.Order()
	from := slices.Index(order, id)
	if from < 0 {
		return nil, targetNotFound(string(TypeReorderZ), id)
	}
	to := slices.Index(Reorder(order, map[string]bool{id: true}, op), id)
	return &ReorderZ{
		base:   newBase(TypeReorderZ, fmt.Sprintf("%s %s", op.verb(), id), opts),
		doc:    doc,
		target: id,
		op:     op,
		from:   from,
		to:     to,
	}, nil
}

// Changed reports whether the object actually moves.
func (c *ReorderZ) Changed() bool { return c.from != c.to }

func (c *ReorderZ) Execute() error { return c.move(c.from, c.to) }
func (c *ReorderZ) Undo() error    { return c.move(c.to, c.from) }

func (c *ReorderZ) move(from, to int) error {
	order := c.doc.Order()
	if from >= len(order) || order[from] != c.target {
		return fmt.Errorf("%s %q: expected at z=%d: %w", c.typ, c.target, from, ErrTargetNotFound)
	}
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, to, c.target)
	return c.doc.SetOrder(order)
}

func (c *ReorderZ) String() string {
	return fmt.Sprintf("%s z=%d->%d", c.base.String(), c.from, c.to)
}

// GroupReorderZ moves several objects at once and keeps the full order on
// both sides.
type GroupReorderZ struct {
	base
	doc    scene.Document
	op     ZOp
	before []string
	after  []string
}

func NewGroupReorderZ(doc scene.Document, targets []string, op ZOp, opts ...Option) (*GroupReorderZ, error) {
	if len(targets) == 0 {
		return nil, targetNotFound(string(TypeGroupReorderZ), "")
	}
	order := doc.Order()
	moved := make(map[string]bool, len(targets))
	for _, id := range targets {
		if !slices.Contains(order, id) {
			return nil, targetNotFound(string(TypeGroupReorderZ), id)
		}
		moved[id] = true
	}
	return &GroupReorderZ{
		base:   newBase(TypeGroupReorderZ, fmt.Sprintf("%s %d objects", op.verb(), len(targets)), opts),
		doc:    doc,
		op:     op,
		before: order,
		after:  Reorder(order, moved, op),
	}, nil
}

func (c *GroupReorderZ) Changed() bool { return !slices.Equal(c.before, c.after) }

func (c *GroupReorderZ) Execute() error { return c.doc.SetOrder(c.after) }
func (c *GroupReorderZ) Undo() error    { return c.doc.SetOrder(c.before) }
