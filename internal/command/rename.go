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

	"gocanvas/internal/scene"
)

// EditFileName changes the file name shown on a file object.
type EditFileName struct {
	base
	doc        scene.Document
	target     string
	prev, name string
}

func NewEditFileName(doc scene.Document, id, name string, opts ...Option) (*EditFileName, error) {
	o, ok := doc.Object(id)
	if !ok {
		return nil, targetNotFound(string(TypeEditFileName), id)
	}
	return &EditFileName{
		base:   newBase(TypeEditFileName, fmt.Sprintf("Rename %s to %q", id, name), opts),
		doc:    doc,
		target: id,
		prev:   o.FileName,
		name:   name,
	}, nil
}

func (c *EditFileName) Execute() error { return c.doc.SetFileName(c.target, c.name) }
func (c *EditFileName) Undo() error    { return c.doc.SetFileName(c.target, c.prev) }

// CanMergeWith folds consecutive edits of the same name while typing.
func (c *EditFileName) CanMergeWith(other Command) bool {
	o, ok := other.(*EditFileName)
	return ok && o.target == c.target
}

func (c *EditFileName) MergeWith(other Command) error {
	if !c.CanMergeWith(other) {
		return c.base.MergeWith(other)
	}
	o := other.(*EditFileName)
	c.name = o.name
	c.ts = o.ts
	return nil
}
