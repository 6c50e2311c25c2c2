/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor routes pointer events through hit-testing to the transform
// controllers and records every finished gesture as a command in history.
package editor

import (
	"errors"
	"sync"

	"gocanvas/internal/bus"
	"gocanvas/internal/clipboard"
	"gocanvas/internal/command"
	"gocanvas/internal/config"
	"gocanvas/internal/geom"
	"gocanvas/internal/guides"
	"gocanvas/internal/hittest"
	"gocanvas/internal/scene"
	"gocanvas/internal/selection"
	"gocanvas/internal/transform"
	"gocanvas/internal/undo"
)

// ErrBusy is returned when a gesture starts while another one is active.
var ErrBusy = errors.New("editor: another gesture is active")

// Options configure an Editor.
type Options struct {
	Transform   transform.Options
	HitTest     hittest.Options
	History     undo.Config
	PasteOffset float64
	// Clipboard defaults to an in-memory clipboard.
	Clipboard clipboard.Clipboard
	// AutoDuplicate answers duplicate requests from the editor's own document.
	// Disable it when another component owns duplication.
	AutoDuplicate bool
	// Guides tunes the alignment lines reported by Editor.Guides.
	Guides guides.Options
}

func DefaultOptions() Options {
	return Options{
		Transform:     transform.DefaultOptions(),
		HitTest:       hittest.DefaultOptions(),
		History:       undo.DefaultConfig(),
		PasteOffset:   command.PasteOffset,
		AutoDuplicate: true,
		Guides:        guides.DefaultOptions(),
	}
}

// OptionsFrom maps the application config onto editor options.
func OptionsFrom(cfg config.AppConfig) Options {
	o := DefaultOptions()
	o.Transform = transform.Options{
		MinObjectSize: cfg.Transform.MinObjectSize,
		MinGroupSize:  cfg.Transform.MinGroupSize,
		SnapDegrees:   cfg.Transform.SnapDegrees,
	}
	o.HitTest = hittest.Options{
		HandleRadius:       cfg.HitTest.HandleRadius,
		RotateOffset:       cfg.HitTest.RotateHandleOffset,
		MinStrokeTolerance: cfg.HitTest.MinStrokeTolerance,
		StrokePadding:      cfg.HitTest.StrokePadding,
	}
	o.History = undo.Config{MaxSize: cfg.History.MaxSize, MergeWindow: cfg.History.MergeWindow()}
	o.PasteOffset = cfg.Clipboard.PasteOffset
	if cfg.Clipboard.System {
		o.Clipboard = clipboard.NewSystem()
	}
	return o
}

type gesture int

const (
	none gesture = iota
	dragging
	resizing
	rotating
	groupDragging
	groupResizing
	groupRotating
	boxSelecting
)

var gestureNames = [...]string{"none", "drag", "resize", "rotate", "group-drag", "group-resize", "group-rotate", "box-select"}

func (g gesture) String() string { return gestureNames[g] }

// Editor owns one document's selection, controllers and history. Methods are
// safe for concurrent use; bus handlers run synchronously inside them.
type Editor struct {
	mu   sync.Mutex
	opts Options
	doc  scene.Document
	bus  *bus.Bus
	sel  *selection.Model
	hit  *hittest.Engine
	hist *undo.History
	clip clipboard.Clipboard

	active  gesture
	drag    *transform.Drag
	resize  *transform.Resize
	rotate  *transform.Rotate
	gdrag   *transform.GroupDrag
	gresize *transform.GroupResize
	grotate *transform.GroupRotate
	box     *transform.BoxSelect

	unsubscribe []func()
}

// New builds an Editor over doc. b may be nil, in which case a private bus is
// created.
func New(doc scene.Document, b *bus.Bus, opts Options) *Editor {
	if b == nil {
		b = bus.New()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewMemory()
	}
	sel := selection.New()
	e := &Editor{
		opts:    opts,
		doc:     doc,
		bus:     b,
		sel:     sel,
		hit:     hittest.New(doc, sel, opts.HitTest),
		hist:    undo.New(opts.History, b),
		clip:    opts.Clipboard,
		drag:    transform.NewDrag(doc, b, opts.Transform),
		resize:  transform.NewResize(doc, b, opts.Transform),
		rotate:  transform.NewRotate(doc, b, opts.Transform),
		gdrag:   transform.NewGroupDrag(doc, b, opts.Transform),
		gresize: transform.NewGroupResize(doc, b, opts.Transform),
		grotate: transform.NewGroupRotate(doc, b, opts.Transform),
		box:     transform.NewBoxSelect(doc, sel, b),
	}
	sel.OnChange = e.selectionChanged
	if opts.AutoDuplicate {
		e.unsubscribe = append(e.unsubscribe,
			b.Subscribe(bus.DuplicateRequest, e.onDuplicateRequest),
			b.Subscribe(bus.GroupDuplicateRequest, e.onGroupDuplicateRequest),
		)
	}
	return e
}

// Close detaches the editor from its bus.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, u := range e.unsubscribe {
		u()
	}
	e.unsubscribe = nil
}

func (e *Editor) Bus() *bus.Bus                  { return e.bus }
func (e *Editor) Document() scene.Document       { return e.doc }
func (e *Editor) History() *undo.History         { return e.hist }
func (e *Editor) Clipboard() clipboard.Clipboard { return e.clip }

// Selection returns the selected ids.
func (e *Editor) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.IDs()
}

// Handles returns the grips renderers should draw for the current selection.
func (e *Editor) Handles() []hittest.HandleInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hit.Handles()
}

// Guides reports alignment lines between the selection and every other
// object. Nothing is snapped.
func (e *Editor) Guides() guides.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	moving, ok := e.sel.ComputeBounds(e.doc.Bounds)
	if !ok {
		return guides.Match{}
	}
	var anchors []geom.Bounds
	for _, o := range e.doc.Objects() {
		if !e.sel.Has(o.ID) {
			anchors = append(anchors, o.Bounds())
		}
	}
	return guides.Compute(moving, anchors, e.opts.Guides)
}

// Active names the gesture in progress, or "none".
func (e *Editor) Active() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active.String()
}

func (e *Editor) selectionChanged(c selection.Change) {
	var topic bus.Topic
	switch c.Op {
	case selection.OpAdd:
		topic = bus.SelectionAdd
	case selection.OpRemove:
		topic = bus.SelectionRemove
	case selection.OpClear:
		topic = bus.SelectionClear
	default:
		topic = bus.SelectionSet
	}
	e.bus.Publish(topic, bus.SelectionPayload{IDs: c.IDs})
}
