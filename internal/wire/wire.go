/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package wire carries editor traffic across a process or runtime boundary
// as JSON envelopes. Inbound envelopes and their payloads are validated
// against the JSON schemas under schema/.
package wire

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

var (
	ErrInvalidMessage = errors.New("wire: invalid message")
	ErrUnknownType    = errors.New("wire: unknown message type")
)

// Inbound message types.
const (
	TypePointerDown         = "pointer.down"
	TypePointerMove         = "pointer.move"
	TypePointerUp           = "pointer.up"
	TypeUndo                = "history.undo"
	TypeRedo                = "history.redo"
	TypeDeleteSelection     = "selection.delete"
	TypeSelectAll           = "selection.all"
	TypeCopy                = "clipboard.copy"
	TypePaste               = "clipboard.paste"
	TypeCreate              = "object.create"
	TypeReorder             = "object.reorder"
	TypeRename              = "object.rename"
	TypeDuplicateReady      = "duplicate.ready"
	TypeGroupDuplicateReady = "group-duplicate.ready"
	TypeGuides              = "selection.guides"
)

// Outbound types besides the bus topics, which are sent verbatim.
const (
	TypeResult = "result"
	TypeError  = "error"
)

// Message is the envelope for both directions.
type Message struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

//go:embed schema/*.json
var schemaFS embed.FS

// payloadSchemas names the schema file for types that carry a payload.
var payloadSchemas = map[string]string{
	TypePointerDown:         "pointer.json",
	TypePointerMove:         "pointer.json",
	TypePointerUp:           "pointer.json",
	TypeCreate:              "create.json",
	TypeReorder:             "reorder.json",
	TypeRename:              "rename.json",
	TypeDuplicateReady:      "duplicate-ready.json",
	TypeGroupDuplicateReady: "group-duplicate-ready.json",
}

var bare = map[string]bool{
	TypeUndo:            true,
	TypeRedo:            true,
	TypeDeleteSelection: true,
	TypeSelectAll:       true,
	TypeCopy:            true,
	TypePaste:           true,
	TypeGuides:          true,
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = map[string]*gojsonschema.Schema{}
		for _, name := range append([]string{"envelope.json"}, valuesOf(payloadSchemas)...) {
			if _, ok := compiled[name]; ok {
				continue
			}
			data, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				compileErr = err
				return
			}
			s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

func valuesOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func validate(s *gojsonschema.Schema, data []byte, what string) error {
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%s: %v: %w", what, err, ErrInvalidMessage)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s: %s: %w", what, strings.Join(msgs, "; "), ErrInvalidMessage)
	}
	return nil
}

// Decode parses and validates one inbound envelope and its payload.
func Decode(data []byte) (Message, error) {
	ss, err := schemas()
	if err != nil {
		return Message{}, err
	}
	if err := validate(ss["envelope.json"], data, "envelope"); err != nil {
		return Message{}, err
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("envelope: %v: %w", err, ErrInvalidMessage)
	}
	name, ok := payloadSchemas[m.Type]
	if !ok {
		if bare[m.Type] {
			return m, nil
		}
		return m, fmt.Errorf("%q: %w", m.Type, ErrUnknownType)
	}
	if len(m.Payload) == 0 {
		return m, fmt.Errorf("%s: missing payload: %w", m.Type, ErrInvalidMessage)
	}
	if err := validate(ss[name], m.Payload, m.Type); err != nil {
		return m, err
	}
	return m, nil
}

// Encode wraps payload in an envelope.
func Encode(typ string, seq int64, payload any) ([]byte, error) {
	m := Message{Type: typ, Seq: seq}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", typ, err)
		}
		m.Payload = raw
	}
	return json.Marshal(m)
}
