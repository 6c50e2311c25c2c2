/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gocanvas/internal/bus"
	"gocanvas/internal/command"
	"gocanvas/internal/crash"
	"gocanvas/internal/editor"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
	"gocanvas/internal/transform"
)

func demoScene() *scene.Store {
	st := scene.NewStore()
	_ = st.Add(
		scene.Object{ID: "frame", Kind: scene.KindRect, Name: "Frame", Transform: geom.Snapshot{Position: geom.Pt(10, 10), Size: geom.Sz(100, 50)}, Style: scene.Style{Fill: "#f4f4f4", Stroke: "#333", LineWidth: 2}},
		scene.Object{ID: "logo", Kind: scene.KindImage, Name: "Logo", Transform: geom.Snapshot{Position: geom.Pt(200, 40), Size: geom.Sz(80, 80)}},
		scene.Object{ID: "spec", Kind: scene.KindFile, FileName: "draft.pdf", Transform: geom.Snapshot{Position: geom.Pt(320, 40), Size: geom.Sz(60, 80)}},
		scene.Object{ID: "stroke", Kind: scene.KindInk, Transform: geom.Snapshot{Position: geom.Pt(40, 200), Size: geom.Sz(100, 40)}, Base: geom.Sz(100, 40),
			Points: []geom.Point{{X: 0, Y: 40}, {X: 50, Y: 0}, {X: 100, Y: 40}}, Style: scene.Style{Stroke: "#000", LineWidth: 3}},
	)
	return st
}

// sceneDump serializes a document for crash reports.
func sceneDump(doc scene.Backend) func() ([]byte, error) {
	return func() ([]byte, error) { return json.MarshalIndent(doc.Objects(), "", "  ") }
}

type demo struct {
	w   io.Writer
	ed  *editor.Editor
	st  *scene.Store
	err error
}

func (d *demo) step(name string, fn func() error) {
	if d.err != nil {
		return
	}
	if err := fn(); err != nil {
		d.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	fmt.Fprintf(d.w, "%-28s history=%d cursor=%d selection=%v\n", name, d.ed.History().Len(), d.ed.History().CurrentIndex(), d.ed.Selection())
}

func (d *demo) gesture(from editor.Pointer, to ...editor.Pointer) error {
	if _, err := d.ed.PointerDown(from); err != nil {
		return err
	}
	for _, p := range to[:len(to)-1] {
		d.ed.PointerMove(p)
	}
	_, err := d.ed.PointerUp(to[len(to)-1])
	return err
}

func (d *demo) handle(h geom.Handle) (editor.Pointer, error) {
	for _, hi := range d.ed.Handles() {
		if hi.Handle == h {
			s := d.st.Viewport().ToScreen(hi.Position)
			return editor.Pointer{X: s.X, Y: s.Y}, nil
		}
	}
	return editor.Pointer{}, fmt.Errorf("no %s handle on the selection", h)
}

func pt(x, y float64) editor.Pointer { return editor.Pointer{X: x, Y: y} }

func runDemo(w io.Writer, opts editor.Options, info *crash.Info) error {
	st := demoScene()
	ed := editor.New(st, nil, opts)
	defer ed.Close()
	rec := bus.Record(ed.Bus())
	defer rec.Stop()
	stopLog := bus.LogAll(ed.Bus())
	defer stopLog()
	info.History = ed.History().Descriptions
	info.Scene = sceneDump(st)

	d := &demo{w: w, ed: ed, st: st}
	d.step("drag frame", func() error {
		return d.gesture(pt(20, 20), pt(35, 25), pt(50, 40))
	})
	d.step("alt-drag clone of frame", func() error {
		alt := transform.Modifiers{Alt: true}
		return d.gesture(pt(60, 50), editor.Pointer{X: 80, Y: 60, Mods: alt}, editor.Pointer{X: 100, Y: 120, Mods: alt})
	})
	d.step("rotate logo with snap", func() error {
		ed.Select("logo")
		from, err := d.handle(geom.HandleRotate)
		if err != nil {
			return err
		}
		shift := transform.Modifiers{Shift: true}
		return d.gesture(from, editor.Pointer{X: 300, Y: 60, Mods: shift}, editor.Pointer{X: 320, Y: 80, Mods: shift})
	})
	d.step("box select", func() error {
		return d.gesture(pt(190, 0), pt(300, 100), pt(400, 130))
	})
	d.step("group resize from se", func() error {
		from, err := d.handle(geom.HandleSE)
		if err != nil {
			return err
		}
		return d.gesture(from, pt(from.X+40, from.Y+20))
	})
	d.step("send to back", func() error {
		_, err := ed.Reorder(command.ZBack)
		return err
	})
	d.step("copy", func() error {
		_, err := ed.CopySelection()
		return err
	})
	d.step("paste", func() error {
		_, err := ed.Paste()
		return err
	})
	d.step("rename file", func() error {
		_, err := ed.RenameFile("spec", "final.pdf")
		return err
	})
	d.step("create text", func() error {
		_, err := ed.Create(scene.Object{Kind: scene.KindText, Text: "Hello\ncanvas", Transform: geom.Snapshot{Position: geom.Pt(40, 300)}})
		return err
	})
	d.step("delete selection", func() error {
		_, err := ed.DeleteSelection()
		return err
	})
	d.step("undo twice", func() error {
		if !ed.Undo() || !ed.Undo() {
			return fmt.Errorf("undo refused")
		}
		return nil
	})
	d.step("redo", func() error {
		if !ed.Redo() {
			return fmt.Errorf("redo refused")
		}
		return nil
	})
	if d.err != nil {
		return d.err
	}

	fmt.Fprintln(w, "\nHistory (oldest first):")
	for i, desc := range ed.History().Descriptions() {
		marker := " "
		if i == ed.History().CurrentIndex() {
			marker = ">"
		}
		fmt.Fprintf(w, " %s %2d %s\n", marker, i, desc)
	}
	fmt.Fprintln(w, "\nObjects (bottom to top):")
	for _, o := range st.Objects() {
		t := o.Transform
		fmt.Fprintf(w, "  %-32s %-6s pos=(%.1f,%.1f) size=%.1fx%.1f rot=%.1f\n", o.ID, o.Kind, t.Position.X, t.Position.Y, t.Size.Width, t.Size.Height, t.Rotation)
	}

	counts := map[bus.Topic]int{}
	for _, tp := range rec.Topics() {
		counts[tp]++
	}
	topics := make([]string, 0, len(counts))
	for tp := range counts {
		topics = append(topics, string(tp))
	}
	sort.Strings(topics)
	fmt.Fprintln(w, "\nNotifications:")
	for _, tp := range topics {
		fmt.Fprintf(w, "  %-26s %d\n", tp, counts[bus.Topic(tp)])
	}
	return nil
}
