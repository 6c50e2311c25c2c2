/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"slices"

	"gocanvas/internal/bus"
	"gocanvas/internal/ids"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
)

type duplicator interface {
	Duplicate(id, newID string) (scene.Object, error)
}

// duplicate copies id directly above itself under a fresh id.
func (e *Editor) duplicate(id string) (string, error) {
	newID := ids.NewObjectID()
	if d, ok := e.doc.(duplicator); ok {
		if _, err := d.Duplicate(id, newID); err != nil {
			return "", err
		}
		return newID, nil
	}
	o, ok := e.doc.Object(id)
	if !ok {
		return "", fmt.Errorf("duplicate %q: %w", id, scene.ErrNotFound)
	}
	o.ID = newID
	if err := e.doc.Insert(o, slices.Index(e.doc.Order(), id)+1); err != nil {
		return "", err
	}
	return newID, nil
}

// onDuplicateRequest answers an Alt-drag clone request from the editor's
// own document. It runs inside the drag's Update.
func (e *Editor) onDuplicateRequest(m bus.Message) {
	req, ok := m.Payload.(bus.DuplicateRequestPayload)
	if !ok {
		return
	}
	newID, err := e.duplicate(req.OriginalID)
	if err != nil {
		applog.WithComponent("editor").Warn("duplicate failed", "id", req.OriginalID, "err", err)
		e.drag.CancelClone()
		return
	}
	e.duplicateReady(bus.DuplicateReadyPayload{RequestID: req.RequestID, OriginalID: req.OriginalID, NewID: newID})
}

func (e *Editor) onGroupDuplicateRequest(m bus.Message) {
	req, ok := m.Payload.(bus.GroupDuplicateRequestPayload)
	if !ok {
		return
	}
	mapping := make(map[string]string, len(req.Objects))
	for _, id := range req.Objects {
		newID, err := e.duplicate(id)
		if err != nil {
			applog.WithComponent("editor").Warn("group duplicate failed", "id", id, "err", err)
			for _, c := range mapping {
				_, _, _ = e.doc.Remove(c)
			}
			e.gdrag.CancelClone()
			return
		}
		mapping[id] = newID
	}
	e.groupDuplicateReady(bus.GroupDuplicateReadyPayload{RequestID: req.RequestID, Map: mapping})
}

// DuplicateReady delivers a clone reply produced outside the editor.
func (e *Editor) DuplicateReady(r bus.DuplicateReadyPayload) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duplicateReady(r)
}

// GroupDuplicateReady delivers a group clone reply produced outside the
// editor.
func (e *Editor) GroupDuplicateReady(r bus.GroupDuplicateReadyPayload) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groupDuplicateReady(r)
}

// duplicateReady retargets the active drag. A reply nobody is waiting for
// leaves an orphan duplicate, which is removed.
func (e *Editor) duplicateReady(r bus.DuplicateReadyPayload) bool {
	e.bus.Publish(bus.DuplicateReady, r)
	if e.active == dragging && e.drag.DuplicateReady(r) {
		return true
	}
	if r.NewID != r.OriginalID {
		e.dropOrphans(r.NewID)
	}
	return false
}

func (e *Editor) groupDuplicateReady(r bus.GroupDuplicateReadyPayload) bool {
	e.bus.Publish(bus.GroupDuplicateReady, r)
	if e.active == groupDragging && e.gdrag.GroupDuplicateReady(r) {
		return true
	}
	orphans := make([]string, 0, len(r.Map))
	for orig, c := range r.Map {
		if c != orig {
			orphans = append(orphans, c)
		}
	}
	e.dropOrphans(orphans...)
	return false
}

func (e *Editor) dropOrphans(clones ...string) {
	for _, id := range clones {
		if id == "" || e.sel.Has(id) {
			continue
		}
		if _, _, err := e.doc.Remove(id); err == nil {
			applog.WithComponent("editor").Debug("removed orphan duplicate", "id", id)
		}
	}
}
