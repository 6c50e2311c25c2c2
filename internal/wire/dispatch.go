/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"gocanvas/internal/bus"
	"gocanvas/internal/command"
	"gocanvas/internal/editor"
	"gocanvas/internal/guides"
	"gocanvas/internal/hittest"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
)

// Result is the payload of a "result" reply.
type Result struct {
	OK      bool            `json:"ok"`
	Hit     *hittest.Result `json:"hit,omitempty"`
	Command string          `json:"command,omitempty"`
	IDs     []string        `json:"ids,omitempty"`
	Guides  *guides.Match   `json:"guides,omitempty"`
}

// ErrorPayload is the payload of an "error" reply.
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type createPayload struct {
	Objects []scene.Object `json:"objects"`
}

type reorderPayload struct {
	Op string `json:"op"`
}

type renamePayload struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}

// Dispatcher feeds decoded messages to an editor.
type Dispatcher struct {
	ed *editor.Editor
}

func NewDispatcher(ed *editor.Editor) *Dispatcher { return &Dispatcher{ed: ed} }

// Handle decodes one inbound envelope, applies it and returns the encoded
// reply. Errors are reported in the reply, never returned, except when the
// reply itself cannot be encoded.
func (d *Dispatcher) Handle(data []byte) ([]byte, error) {
	m, err := Decode(data)
	if err == nil {
		var res Result
		res, err = d.apply(m)
		if err == nil {
			return Encode(TypeResult, m.Seq, res)
		}
	}
	applog.WithComponent("wire").Warn("message rejected", "type", m.Type, "seq", m.Seq, "err", err)
	return Encode(TypeError, m.Seq, ErrorPayload{Message: err.Error(), Code: errorCode(err)})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, ErrInvalidMessage):
		return "invalid"
	case errors.Is(err, editor.ErrBusy):
		return "busy"
	case errors.Is(err, command.ErrTargetNotFound):
		return "not_found"
	case errors.Is(err, scene.ErrExists):
		return "exists"
	case errors.Is(err, command.ErrNothingToPaste):
		return "empty_clipboard"
	default:
		return "failed"
	}
}

func describe(c command.Command) string {
	if c == nil {
		return ""
	}
	return c.Description()
}

func (d *Dispatcher) apply(m Message) (Result, error) {
	ok := Result{OK: true}
	switch m.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p editor.Pointer
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		switch m.Type {
		case TypePointerDown:
			hit, err := d.ed.PointerDown(p)
			if err != nil {
				return Result{}, err
			}
			ok.Hit = &hit
		case TypePointerMove:
			d.ed.PointerMove(p)
		default:
			c, err := d.ed.PointerUp(p)
			if err != nil {
				return Result{}, err
			}
			ok.Command = describe(c)
		}
	case TypeUndo:
		ok.OK = d.ed.Undo()
	case TypeRedo:
		ok.OK = d.ed.Redo()
	case TypeDeleteSelection:
		c, err := d.ed.DeleteSelection()
		if err != nil {
			return Result{}, err
		}
		ok.Command = describe(c)
	case TypeGuides:
		g := d.ed.Guides()
		ok.Guides = &g
	case TypeSelectAll:
		d.ed.SelectAll()
		ok.IDs = d.ed.Selection()
	case TypeCopy:
		c, err := d.ed.CopySelection()
		if err != nil {
			return Result{}, err
		}
		ok.Command = describe(c)
	case TypePaste:
		ids, err := d.ed.Paste()
		if err != nil {
			return Result{}, err
		}
		ok.IDs = ids
	case TypeCreate:
		var p createPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		ids, err := d.ed.Create(p.Objects...)
		if err != nil {
			return Result{}, err
		}
		ok.IDs = ids
	case TypeReorder:
		var p reorderPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		op, err := command.ParseZOp(p.Op)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		c, err := d.ed.Reorder(op)
		if err != nil {
			return Result{}, err
		}
		ok.Command = describe(c)
	case TypeRename:
		var p renamePayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		c, err := d.ed.RenameFile(p.ID, p.FileName)
		if err != nil {
			return Result{}, err
		}
		ok.Command = describe(c)
	case TypeDuplicateReady:
		var p bus.DuplicateReadyPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		ok.OK = d.ed.DuplicateReady(p)
	case TypeGroupDuplicateReady:
		var p bus.GroupDuplicateReadyPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return Result{}, fmt.Errorf("%s: %v: %w", m.Type, err, ErrInvalidMessage)
		}
		ok.OK = d.ed.GroupDuplicateReady(p)
	default:
		return Result{}, fmt.Errorf("%q: %w", m.Type, ErrUnknownType)
	}
	return ok, nil
}

// Forward encodes every bus message and hands it to send. The returned func
// stops forwarding.
func Forward(b *bus.Bus, send func([]byte)) func() {
	l := applog.WithComponent("wire")
	return b.SubscribeAll(func(m bus.Message) {
		data, err := Encode(string(m.Topic), 0, m.Payload)
		if err != nil {
			l.Warn("drop outbound message", "topic", string(m.Topic), "err", err)
			return
		}
		send(data)
	})
}
