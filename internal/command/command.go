/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package command defines reversible document mutations. Every command
// captures the before and after state it needs at construction, so Execute
// and Undo never consult mutable state to decide what to restore.
package command

import (
	"errors"
	"fmt"
	"time"

	"gocanvas/internal/ids"
	"gocanvas/internal/scene"
)

var (
	// ErrTargetNotFound is returned by constructors when an object the
	// command would act on does not exist. No command is built in that case.
	ErrTargetNotFound = errors.New("command: target not found")
	// ErrNotMergeable is the default MergeWith result.
	ErrNotMergeable = errors.New("command: not mergeable")
	// ErrNothingToPaste is returned by NewPaste for an empty clipboard.
	ErrNothingToPaste = errors.New("command: clipboard is empty")
)

// Type tags the concrete command.
type Type string

const (
	TypeCreate        Type = "create"
	TypeDelete        Type = "delete"
	TypeMove          Type = "move"
	TypeResize        Type = "resize"
	TypeRotate        Type = "rotate"
	TypeCopy          Type = "copy"
	TypePaste         Type = "paste"
	TypeGroupMove     Type = "group-move"
	TypeGroupResize   Type = "group-resize"
	TypeGroupRotate   Type = "group-rotate"
	TypeReorderZ      Type = "reorder-z"
	TypeGroupReorderZ Type = "group-reorder-z"
	TypeEditFileName  Type = "edit-file-name"
)

// Command is a reversible mutation.
type Command interface {
	ID() string
	Type() Type
	Timestamp() time.Time
	Description() string
	Execute() error
	Undo() error
	// CanMergeWith reports whether other can be folded into the receiver.
	CanMergeWith(other Command) bool
	// MergeWith folds other's end state into the receiver.
	MergeWith(other Command) error
	String() string
}

// now is swapped in tests.
var now = time.Now

// Option customizes a command at construction.
type Option func(*base)

// At sets the command timestamp.
func At(ts time.Time) Option { return func(b *base) { b.ts = ts } }

// WithID sets the command id instead of generating one.
func WithID(id string) Option { return func(b *base) { b.id = id } }

// base carries the metadata every command shares and the non-merging defaults.
type base struct {
	id   string
	typ  Type
	ts   time.Time
	desc string
}

func newBase(t Type, desc string, opts []Option) base {
	b := base{typ: t, desc: desc}
	for _, o := range opts {
		o(&b)
	}
	if b.id == "" {
		b.id = ids.NewCommandID()
	}
	if b.ts.IsZero() {
		b.ts = now()
	}
	return b
}

func (b *base) ID() string                { return b.id }
func (b *base) Type() Type                { return b.typ }
func (b *base) Timestamp() time.Time      { return b.ts }
func (b *base) Description() string       { return b.desc }
func (b *base) CanMergeWith(Command) bool { return false }
func (b *base) MergeWith(other Command) error {
	return fmt.Errorf("%s into %s: %w", other.Type(), b.typ, ErrNotMergeable)
}

func (b *base) String() string {
	return fmt.Sprintf("%s{id=%s ts=%s %q}", b.typ, b.id, b.ts.Format(time.RFC3339Nano), b.desc)
}

func targetNotFound(op, id string) error {
	return fmt.Errorf("%s %q: %w", op, id, ErrTargetNotFound)
}

// present fails with ErrTargetNotFound for the first id doc does not hold.
// Multi-object commands check it before mutating so a failure changes nothing.
func present(doc scene.Backend, op string, ids ...string) error {
	for _, id := range ids {
		if _, ok := doc.Transform(id); !ok {
			return targetNotFound(op, id)
		}
	}
	return nil
}

// absent fails with scene.ErrExists for the first id doc already holds.
func absent(doc scene.Backend, op string, ids ...string) error {
	for _, id := range ids {
		if _, ok := doc.Transform(id); ok {
			return fmt.Errorf("%s %q: %w", op, id, scene.ErrExists)
		}
	}
	return nil
}
