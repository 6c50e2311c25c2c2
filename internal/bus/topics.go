/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bus

import "gocanvas/internal/geom"

// Gesture names a transform gesture.
type Gesture string

const (
	Drag        Gesture = "drag"
	Resize      Gesture = "resize"
	Rotate      Gesture = "rotate"
	GroupDrag   Gesture = "group-drag"
	GroupResize Gesture = "group-resize"
	GroupRotate Gesture = "group-rotate"
)

// Phase is the lifecycle step of a gesture.
type Phase string

const (
	Start  Phase = "start"
	Update Phase = "update"
	End    Phase = "end"
)

// GestureTopic builds "<gesture>:<phase>".
func GestureTopic(g Gesture, p Phase) Topic { return Topic(string(g) + ":" + string(p)) }

const (
	SelectionAdd    Topic = "selection:add"
	SelectionRemove Topic = "selection:remove"
	SelectionClear  Topic = "selection:clear"
	SelectionSet    Topic = "selection:set"

	BoxSelectStart  Topic = "box-select:start"
	BoxSelectUpdate Topic = "box-select:update"
	BoxSelectEnd    Topic = "box-select:end"

	DuplicateRequest      Topic = "duplicate:request"
	DuplicateReady        Topic = "duplicate:ready"
	GroupDuplicateRequest Topic = "group-duplicate:request"
	GroupDuplicateReady   Topic = "group-duplicate:ready"

	HistoryChange Topic = "history:change"
)

// TransformPayload accompanies drag, resize and rotate notifications.
type TransformPayload struct {
	ID     string        `json:"id"`
	Handle geom.Handle   `json:"handle,omitempty"`
	Before geom.Snapshot `json:"before"`
	After  geom.Snapshot `json:"after"`
}

// GroupDragPayload carries the uniform delta applied to every member.
type GroupDragPayload struct {
	IDs    []string    `json:"ids"`
	Delta  geom.Point  `json:"delta"`
	Bounds geom.Bounds `json:"bounds"`
}

// GroupResizePayload carries the group rectangle before and after plus the
// derived per-axis scale.
type GroupResizePayload struct {
	IDs         []string    `json:"ids"`
	Handle      geom.Handle `json:"handle"`
	StartBounds geom.Bounds `json:"startBounds"`
	NewBounds   geom.Bounds `json:"newBounds"`
	ScaleX      float64     `json:"scaleX"`
	ScaleY      float64     `json:"scaleY"`
}

// GroupRotatePayload carries the pivot and the signed delta in degrees.
type GroupRotatePayload struct {
	IDs    []string   `json:"ids"`
	Center geom.Point `json:"center"`
	Angle  float64    `json:"angle"`
}

type SelectionPayload struct {
	IDs []string `json:"ids"`
}

type BoxSelectPayload struct {
	Rect geom.Bounds `json:"rect"`
	IDs  []string    `json:"ids"`
}

type DuplicateRequestPayload struct {
	RequestID  string     `json:"requestId"`
	OriginalID string     `json:"originalId"`
	Position   geom.Point `json:"position"`
}

type DuplicateReadyPayload struct {
	RequestID  string `json:"requestId"`
	OriginalID string `json:"originalId"`
	NewID      string `json:"newId"`
}

type GroupDuplicateRequestPayload struct {
	RequestID string   `json:"requestId"`
	Objects   []string `json:"objects"`
}

type GroupDuplicateReadyPayload struct {
	RequestID string            `json:"requestId"`
	Map       map[string]string `json:"map"`
}

type HistoryPayload struct {
	Length       int    `json:"length"`
	CurrentIndex int    `json:"currentIndex"`
	CanUndo      bool   `json:"canUndo"`
	CanRedo      bool   `json:"canRedo"`
	Description  string `json:"description,omitempty"`
}
