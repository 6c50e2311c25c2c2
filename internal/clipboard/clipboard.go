/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard stores copied canvas objects for Copy and Paste.
package clipboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
)

// Clipboard holds the most recently copied objects.
type Clipboard interface {
	Write(objs []scene.Object) error
	// Read returns the copied objects; false when nothing was copied.
	Read() ([]scene.Object, bool, error)
}

func cloneAll(objs []scene.Object) []scene.Object {
	if objs == nil {
		return nil
	}
	out := make([]scene.Object, len(objs))
	for i, o := range objs {
		out[i] = o.Clone()
	}
	return out
}

// Memory is a process-local clipboard.
type Memory struct {
	objs []scene.Object
	set  bool
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Write(objs []scene.Object) error {
	m.objs = cloneAll(objs)
	m.set = objs != nil
	return nil
}

func (m *Memory) Read() ([]scene.Object, bool, error) {
	return cloneAll(m.objs), m.set, nil
}

// mimeTag marks clipboard text written by this program.
const mimeTag = "application/x-gocanvas-objects"

type envelope struct {
	Type    string         `json:"type"`
	Objects []scene.Object `json:"objects"`
}

// System mirrors copies to the operating system clipboard as JSON so they
// survive across sessions and processes. When the system clipboard is
// unavailable it behaves like Memory.
type System struct {
	mem Memory
}

func NewSystem() *System { return &System{} }

// Available reports whether a system clipboard utility was found.
func (s *System) Available() bool { return !clipboard.Unsupported }

func (s *System) Write(objs []scene.Object) error {
	_ = s.mem.Write(objs)
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(envelope{Type: mimeTag, Objects: objs})
	if err != nil {
		return fmt.Errorf("encode clipboard: %w", err)
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		applog.WithComponent("clipboard").Warn("system clipboard write failed; keeping in-memory copy", "err", err)
	}
	return nil
}

func (s *System) Read() ([]scene.Object, bool, error) {
	if !s.Available() {
		return s.mem.Read()
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return s.mem.Read()
	}
	objs, err := Decode(text)
	if errors.Is(err, ErrForeign) {
		return s.mem.Read()
	}
	if err != nil {
		return nil, false, err
	}
	return objs, true, nil
}

// ErrForeign reports clipboard text that was not written by this program.
var ErrForeign = errors.New("clipboard: foreign content")

// Decode parses clipboard text written by System.
func Decode(text string) ([]scene.Object, error) {
	if !strings.Contains(text, mimeTag) {
		return nil, ErrForeign
	}
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("decode clipboard: %w", err)
	}
	if env.Type != mimeTag {
		return nil, ErrForeign
	}
	return env.Objects, nil
}
